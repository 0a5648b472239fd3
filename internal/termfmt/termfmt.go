// This helper library has been graciously donated by @shabbyrobe; i'll leave the rest of the
// preamble intact:

// Not-at-all novel terminal style copypasta, originally from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.
package termfmt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
)

type Escape interface {
	Wrap(out string) string
}

func Bold() Style              { return (Style{}).Bold() }
func Linked(link string) Style { return (Style{}).Linked(link) }

type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) with(escs ...Escape) Style {
	c.escapes = append(c.escapes, escs...)
	return c
}

func (c Style) Bold() Style              { return c.with(BoldEscape{}) }
func (c Style) Linked(link string) Style { return c.with(Link{link}) }

func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := printable(fmt.Sprintf(buildValueFormat(f, verb), c.v))
	if enabled {
		for i := len(c.escapes) - 1; i >= 0; i-- {
			v = c.escapes[i].Wrap(v)
		}
	}
	f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	if f.Flag(' ') {
		s += " "
	}
	if f.Flag('+') {
		s += "+"
	}
	if f.Flag('-') {
		s += "-"
	}
	if f.Flag('0') {
		s += "0"
	}
	if f.Flag('#') {
		s += "#"
	}
	width, ok := f.Width()
	if ok {
		s += strconv.Itoa(width)
	}
	prec, ok := f.Precision()
	if ok {
		s += "." + strconv.Itoa(prec)
	}
	s += string(verb)
	return s
}

type Link struct {
	URL string
}

func (l Link) Wrap(out string) string {
	return fmt.Sprintf(""+
		"\x1b]8;;"+
		"%s"+
		"\x1b\\"+
		"%s"+
		"\x1b]8;;\x1b\\",
		printable(l.URL),
		out)
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

var enabled = true

// Enable switches escapes on or off.  Disabled styles print their plain value.
func Enable(yep bool) { enabled = yep }

// EnableFor turns escapes on only if w is a terminal.
func EnableFor(w io.Writer) { enabled = IsTerminal(w) }

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func mapPrintable(r rune) rune {
	if unicode.IsGraphic(r) {
		return r
	}
	return -1
}

func printable(v string) string {
	return strings.Map(mapPrintable, v)
}
