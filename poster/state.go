package poster

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrPromptInFilterMode is returned instead of asking anything while page content comes from stdin.
var ErrPromptInFilterMode = errors.New("poster: cannot prompt in filter mode, page content is read from stdin")

// State carries the settings and side effects of one run.
type State struct {
	Force          bool
	ForceCreate    bool
	MinorEdit      bool
	Quiet          bool
	Report         bool
	VersionComment string

	Prompter *Prompter
	Out      io.Writer
	Log      *slog.Logger

	// IDs of the pages created during this run.
	CreatedPages []int

	filterMode bool
}

// SetFilterMode switches to non-interactive operation.  Filter mode is always quiet.
func (s *State) SetFilterMode() {
	s.filterMode = true
	s.Quiet = true
}

func (s *State) FilterMode() bool {
	return s.filterMode
}

func (s *State) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Echo prints a progress line unless the run is quiet.
func (s *State) Echo(format string, a ...any) {
	if s.Quiet || s.Out == nil {
		return
	}
	fmt.Fprintf(s.Out, format+"\n", a...)
}

// Confirm asks the user a yes/no question.
func (s *State) Confirm(question string) (bool, error) {
	if s.filterMode {
		return false, fmt.Errorf("%w: %s", ErrPromptInFilterMode, question)
	}
	if s.Prompter == nil {
		return false, ErrNoInput
	}
	return s.Prompter.Confirm(question)
}

// Ask prompts the user for a value.
func (s *State) Ask(question string) (string, error) {
	if s.filterMode {
		return "", fmt.Errorf("%w: %s", ErrPromptInFilterMode, question)
	}
	if s.Prompter == nil {
		return "", ErrNoInput
	}
	return s.Prompter.Prompt(question)
}
