package poster

import (
	"context"
	"fmt"

	"github.com/toothbrush/confluence-poster/confluence"
)

// Wiki is the part of the Confluence client the poster needs.
type Wiki interface {
	GetPageByTitle(ctx context.Context, space, title string, expand ...string) (*confluence.Content, error)
	LastUpdatedBy(ctx context.Context, id int) (string, error)
	CreatePage(ctx context.Context, space, title string, parentID int, value string, repr confluence.Representation) (*confluence.Content, error)
	UpdatePage(ctx context.Context, id int, title string, value string, repr confluence.Representation, minorEdit bool, message string) (*confluence.Content, error)
	GetChildIDList(ctx context.Context, id int) ([]int, error)
	PageURL(c *confluence.Content) string
	HistoryURL(pageID int) string
}

var _ Wiki = (*confluence.API)(nil)

// Resolution is the outcome of looking a page up by title.  The zero value means not found.
type Resolution struct {
	Found bool
	ID    int
	URL   string
}

// NotFound is the resolution of a page that doesn't exist.
var NotFound = Resolution{}

// AuthorMismatchError stops a run when a page was last edited by somebody unexpected.
type AuthorMismatchError struct {
	Title      string
	PageID     int
	Expected   string
	Actual     string
	HistoryURL string
}

func (e *AuthorMismatchError) Error() string {
	return fmt.Sprintf("poster: last author of page '%s' is not %s, it's %s. Please check %s",
		e.Title, e.Expected, e.Actual, e.HistoryURL)
}

type Resolver struct {
	Wiki Wiki
}

// ResolvePage looks a page up by title within a space.
func (r *Resolver) ResolvePage(ctx context.Context, title, space string) (Resolution, error) {
	page, err := r.Wiki.GetPageByTitle(ctx, space, title)
	if confluence.IsNotFound(err) {
		return NotFound, nil
	}
	if err != nil {
		return NotFound, fmt.Errorf("poster: couldn't resolve page '%s': %w", title, err)
	}

	id, err := page.IntID()
	if err != nil {
		return NotFound, fmt.Errorf("poster: couldn't resolve page '%s': %w", title, err)
	}

	return Resolution{Found: true, ID: id, URL: r.Wiki.PageURL(page)}, nil
}

// CheckLastAuthor compares the last editor of a page with the expected one.  It returns whether
// they match along with the actual editor.
func (r *Resolver) CheckLastAuthor(ctx context.Context, pageID int, expected string) (bool, string, error) {
	actual, err := r.Wiki.LastUpdatedBy(ctx, pageID)
	if err != nil {
		return false, "", fmt.Errorf("poster: couldn't check last author of page %d: %w", pageID, err)
	}

	return actual == expected, actual, nil
}

// GuardAuthor returns an AuthorMismatchError if the page was last edited by someone else.
func (r *Resolver) GuardAuthor(ctx context.Context, title string, pageID int, expected string) error {
	ok, actual, err := r.CheckLastAuthor(ctx, pageID, expected)
	if err != nil {
		return err
	}
	if !ok {
		return &AuthorMismatchError{
			Title:      title,
			PageID:     pageID,
			Expected:   expected,
			Actual:     actual,
			HistoryURL: r.Wiki.HistoryURL(pageID),
		}
	}
	return nil
}
