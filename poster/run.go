package poster

import (
	"context"
	"fmt"
	"io"
)

// Failure records a page that couldn't be posted.
type Failure struct {
	Title string
	Err   error
}

// Report sums up a run.
type Report struct {
	Created []int
	Updated []int
	Skipped []string
	Failed  []Failure
}

// Runner posts a list of pages one after the other.
type Runner struct {
	State *State
	Wiki  Wiki

	// Where page_file "-" reads from.
	Stdin io.Reader

	// Expected last editor of existing pages; empty disables the check.
	ExpectedAuthor string
}

// Run checks authorship of every page, then posts them in order.  Only an author mismatch or a
// failed author check aborts the run; other per-page errors are recorded in the report.
func (r *Runner) Run(ctx context.Context, pages []*PostedPage) (*Report, error) {
	s := r.State
	resolver := &Resolver{Wiki: r.Wiki}
	flow := &Flow{
		State:    s,
		Resolver: resolver,
		Poster:   &Poster{Wiki: r.Wiki},
	}

	// A second read of stdin would come back empty and blank the page.
	fromStdin := 0
	for _, page := range pages {
		if page.File == StdinFile {
			fromStdin++
		}
	}
	if fromStdin > 1 {
		return nil, fmt.Errorf("%w, found %d", ErrStdinReused, fromStdin)
	}

	if err := r.checkAuthors(ctx, resolver, pages); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, page := range pages {
		outcome, err := r.post(ctx, flow, page)
		if err != nil {
			s.logger().Error("couldn't post page", "page", page.Title, "error", err)
			report.Failed = append(report.Failed, Failure{Title: page.Title, Err: err})
			continue
		}

		switch outcome.Action {
		case Created:
			report.Created = append(report.Created, outcome.PageID)
		case Updated:
			report.Updated = append(report.Updated, outcome.PageID)
		default:
			report.Skipped = append(report.Skipped, page.Title)
		}
	}

	s.Echo("Finished processing pages")

	return report, nil
}

func (r *Runner) checkAuthors(ctx context.Context, resolver *Resolver, pages []*PostedPage) error {
	s := r.State
	if r.ExpectedAuthor == "" {
		s.logger().Debug("no author configured, skipping last author check")
		return nil
	}
	if s.Force {
		s.logger().Debug("forced, skipping last author check")
		return nil
	}

	for _, page := range pages {
		res, err := resolver.ResolvePage(ctx, page.Title, page.Space)
		if err != nil {
			return fmt.Errorf("poster: couldn't check last author: %w", err)
		}
		if !res.Found {
			continue
		}
		if err := resolver.GuardAuthor(ctx, page.Title, res.ID, r.ExpectedAuthor); err != nil {
			return err
		}
		s.logger().Info("checked last author, like in config, proceeding", "page", page.Title, "author", r.ExpectedAuthor)
	}

	return nil
}

func (r *Runner) post(ctx context.Context, flow *Flow, page *PostedPage) (Outcome, error) {
	repr, err := page.Representation()
	if err != nil {
		return Outcome{}, err
	}

	content, err := page.ReadContent(r.Stdin)
	if err != nil {
		return Outcome{}, err
	}

	if page.VersionComment == "" {
		page.VersionComment = r.State.VersionComment
	}

	return flow.Process(ctx, page, content, repr)
}

// Print writes the summary of the run.
func (rep *Report) Print(w io.Writer, heading func(string) string) {
	if heading == nil {
		heading = func(s string) string { return s }
	}

	fmt.Fprintln(w, heading("Summary:"))
	fmt.Fprintf(w, "  created: %d\n", len(rep.Created))
	for _, id := range rep.Created {
		fmt.Fprintf(w, "    - #%d\n", id)
	}
	fmt.Fprintf(w, "  updated: %d\n", len(rep.Updated))
	for _, id := range rep.Updated {
		fmt.Fprintf(w, "    - #%d\n", id)
	}
	fmt.Fprintf(w, "  skipped: %d\n", len(rep.Skipped))
	for _, t := range rep.Skipped {
		fmt.Fprintf(w, "    - %s\n", t)
	}
	fmt.Fprintf(w, "  failed: %d\n", len(rep.Failed))
	for _, f := range rep.Failed {
		fmt.Fprintf(w, "    - %s: %v\n", f.Title, f.Err)
	}
}
