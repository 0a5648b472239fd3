package poster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input runs out while waiting for an answer.
var ErrNoInput = errors.New("poster: no more input to answer prompt")

// Prompter asks questions on out and reads one answer per line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question.  An empty answer means no; anything unrecognised asks again.
func (p *Prompter) Confirm(question string) (bool, error) {
	return p.ConfirmDefault(question, false)
}

// ConfirmDefault is Confirm with the answer to an empty reply given by def.
func (p *Prompter) ConfirmDefault(question string, def bool) (bool, error) {
	choices := "[y/N]"
	if def {
		choices = "[Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s: ", question, choices)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Error: invalid input")
	}
}

// Prompt asks for a value and repeats the question until a non-empty one is given.
func (p *Prompter) Prompt(question string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", question)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			// keep the terminal tidy
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		return "", fmt.Errorf("poster: couldn't read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
