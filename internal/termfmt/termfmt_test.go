package termfmt

import (
	"bytes"
	"fmt"
	"testing"
)

func TestStyle(t *testing.T) {
	t.Cleanup(func() { Enable(true) })

	Enable(true)
	if got := fmt.Sprintf("%s", Bold().V("hi")); got != "\x1b[1mhi\x1b[0m" {
		t.Errorf("bold = %q", got)
	}
	if got := fmt.Sprintf("%s", Linked("https://example.com").V("x")); got != "\x1b]8;;https://example.com\x1b\\x\x1b]8;;\x1b\\" {
		t.Errorf("link = %q", got)
	}
	if got := fmt.Sprintf("%5d", Bold().V(42)); got != "\x1b[1m   42\x1b[0m" {
		t.Errorf("width not honoured: %q", got)
	}

	Enable(false)
	if got := fmt.Sprintf("%s", Bold().V("hi\x07")); got != "hi" {
		t.Errorf("disabled bold = %q", got)
	}
}

func TestEnableFor_NonTerminal(t *testing.T) {
	t.Cleanup(func() { Enable(true) })

	EnableFor(&bytes.Buffer{})
	if got := fmt.Sprintf("%s", Bold().V("hi")); got != "hi" {
		t.Errorf("expected plain output for non-terminal writer, got %q", got)
	}
}
