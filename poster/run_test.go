package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/confluence"
)

func writePageFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write page file: %v", err)
	}
	return path
}

func TestRunner_AuthorMismatchAbortsBeforeWrites(t *testing.T) {
	w := newFakeWiki(
		&fakePage{id: 1, space: "DOCS", title: "First", lastBy: "jdoe"},
		&fakePage{id: 2, space: "DOCS", title: "Second", lastBy: "mallory"},
	)
	s, _ := newTestState("")
	r := &Runner{State: s, Wiki: w, ExpectedAuthor: "jdoe"}

	pages := []*PostedPage{
		{Page: config.Page{Title: "First", Space: "DOCS", File: writePageFile(t, "first.wiki", "one")}},
		{Page: config.Page{Title: "Second", Space: "DOCS", File: writePageFile(t, "second.wiki", "two")}},
	}

	_, err := r.Run(context.Background(), pages)
	var mismatch *AuthorMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *AuthorMismatchError, got %v", err)
	}
	if mismatch.Actual != "mallory" || mismatch.Expected != "jdoe" || mismatch.PageID != 2 {
		t.Errorf("unexpected mismatch %+v", mismatch)
	}
	if !strings.Contains(err.Error(), "/pages/viewpreviousversions.action?pageId=2") {
		t.Errorf("expected history link in error, got %v", err)
	}
	if w.writes != 0 {
		t.Errorf("no page should be written before the author check passes, got %d writes", w.writes)
	}
}

func TestRunner_ForceSkipsAuthorCheck(t *testing.T) {
	w := newFakeWiki(&fakePage{id: 2, space: "DOCS", title: "Second", lastBy: "mallory"})
	s, _ := newTestState("")
	s.Force = true
	r := &Runner{State: s, Wiki: w, ExpectedAuthor: "jdoe"}

	report, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "Second", Space: "DOCS", File: writePageFile(t, "second.wiki", "two")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2}, report.Updated); diff != "" {
		t.Errorf("updated mismatch (-want +got):\n%s", diff)
	}
	if w.byID(2).body != "two" {
		t.Errorf("page body not written: %q", w.byID(2).body)
	}
}

func TestRunner_MatchingAuthorProceeds(t *testing.T) {
	w := newFakeWiki(&fakePage{id: 1, space: "DOCS", title: "First", lastBy: "jdoe"})
	s, _ := newTestState("")
	r := &Runner{State: s, Wiki: w, ExpectedAuthor: "jdoe"}

	report, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "First", Space: "DOCS", File: writePageFile(t, "first.html", "<p>one</p>")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Updated) != 1 {
		t.Errorf("expected one update, got %+v", report)
	}
}

func TestRunner_PageFailuresDoNotStopTheRun(t *testing.T) {
	w := newFakeWiki(
		&fakePage{id: 1, space: "DOCS", title: "Markdown page"},
		&fakePage{id: 2, space: "DOCS", title: "Wiki page"},
	)
	s, out := newTestState("N\n")
	s.Report = true
	s.VersionComment = "nightly"
	r := &Runner{State: s, Wiki: w}

	report, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "Markdown page", Space: "DOCS", File: writePageFile(t, "a.md", "# nope")}},
		{Page: config.Page{Title: "Missing file", Space: "DOCS", File: filepath.Join(t.TempDir(), "gone.wiki")}},
		{Page: config.Page{Title: "Wiki page", Space: "DOCS", File: writePageFile(t, "b.wiki", "h1. yes")}},
		{Page: config.Page{Title: "New page", Space: "DOCS", File: writePageFile(t, "c.wiki", "h1. new")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Failed) != 2 {
		t.Fatalf("expected two failures, got %+v", report.Failed)
	}
	if !errors.Is(report.Failed[0].Err, ErrUnsupportedFormat) {
		t.Errorf("expected markdown page to fail with ErrUnsupportedFormat, got %v", report.Failed[0].Err)
	}
	if report.Failed[1].Title != "Missing file" {
		t.Errorf("expected missing file failure, got %+v", report.Failed[1])
	}
	if diff := cmp.Diff([]int{2}, report.Updated); diff != "" {
		t.Errorf("updated mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"New page"}, report.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if w.byID(2).message != "nightly" {
		t.Errorf("version comment not passed on: %q", w.byID(2).message)
	}
	if w.byID(1).version != 1 {
		t.Errorf("markdown page should be untouched")
	}
	if !strings.Contains(out.String(), "Finished processing pages") {
		t.Errorf("expected final message in output:\n%s", out.String())
	}

	buf := &bytes.Buffer{}
	report.Print(buf, nil)
	for _, line := range []string{"updated: 1", "    - #2", "skipped: 1", "failed: 2", "Missing file"} {
		if !strings.Contains(buf.String(), line) {
			t.Errorf("expected %q in report:\n%s", line, buf.String())
		}
	}
}

func TestRunner_ContentFromStdin(t *testing.T) {
	w := newFakeWiki(&fakePage{id: 3, space: "DOCS", title: "Piped"})
	s, _ := newTestState("")
	s.SetFilterMode()
	r := &Runner{State: s, Wiki: w, Stdin: strings.NewReader("h1. piped in")}

	report, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "Piped", Space: "DOCS", File: StdinFile, FileFormat: "confluencewiki"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Updated) != 1 || w.byID(3).body != "h1. piped in" {
		t.Errorf("expected stdin content posted, got %+v / %q", report, w.byID(3).body)
	}
}

func TestRunner_StdinReadByOnePageOnly(t *testing.T) {
	w := newFakeWiki(
		&fakePage{id: 3, space: "DOCS", title: "Piped", body: "keep me"},
		&fakePage{id: 4, space: "DOCS", title: "Also piped", body: "keep me too"},
	)
	s, _ := newTestState("")
	s.SetFilterMode()
	r := &Runner{State: s, Wiki: w, Stdin: strings.NewReader("h1. piped in")}

	_, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "Piped", Space: "DOCS", File: StdinFile, FileFormat: "confluencewiki"}},
		{Page: config.Page{Title: "Also piped", Space: "DOCS", File: StdinFile, FileFormat: "confluencewiki"}},
	})
	if !errors.Is(err, ErrStdinReused) {
		t.Fatalf("expected ErrStdinReused, got %v", err)
	}
	if w.writes != 0 {
		t.Errorf("no page should be written, got %d writes", w.writes)
	}
	if w.byID(3).body != "keep me" || w.byID(4).body != "keep me too" {
		t.Errorf("page bodies changed: %q, %q", w.byID(3).body, w.byID(4).body)
	}
}

func TestRunner_AuthorCheckFailsOnSearchError(t *testing.T) {
	w := newFakeWiki(&fakePage{id: 1, space: "DOCS", title: "First", lastBy: "mallory"})
	w.searchErr = fmt.Errorf("%w: https://example.atlassian.net/rest/api/content", confluence.ErrNotFound)
	s, _ := newTestState("")
	r := &Runner{State: s, Wiki: w, ExpectedAuthor: "jdoe"}

	_, err := r.Run(context.Background(), []*PostedPage{
		{Page: config.Page{Title: "First", Space: "DOCS", File: writePageFile(t, "first.wiki", "one")}},
	})
	if !errors.Is(err, confluence.ErrNotFound) {
		t.Fatalf("expected the author check to fail, got %v", err)
	}
	if w.writes != 0 {
		t.Errorf("no page should be written, got %d writes", w.writes)
	}
}
