package confluence

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ErrPageNotFound is returned when a title search comes back empty.  An HTTP 404 is ErrNotFound
// instead: that usually means the base URL is wrong, not that the page is missing.
var ErrPageNotFound = errors.New("confluence: no such page")

// RequestTimeout bounds every single REST call made by the helpers below.
var RequestTimeout = 30 * time.Second

// GetPageByTitle finds a page by exact title within a space.  Returns ErrPageNotFound if there is
// none.
func (api *API) GetPageByTitle(ctx context.Context, space, title string, expand ...string) (*Content, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	found, err := api.GetContent(ctx, GetContentQuery{
		SpaceKey: space,
		Title:    title,
		Type:     "page",
		Expand:   expand,
		Limit:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't look up page '%s' in %s: %w", title, space, err)
	}

	if len(found.Results) == 0 {
		return nil, fmt.Errorf("%w: page '%s' in space %s", ErrPageNotFound, title, space)
	}

	return &found.Results[0], nil
}

// GetPageID returns the numeric ID of a page, or ErrPageNotFound.
func (api *API) GetPageID(ctx context.Context, space, title string) (int, error) {
	page, err := api.GetPageByTitle(ctx, space, title)
	if err != nil {
		return 0, err
	}

	return page.IntID()
}

// GetPageByID fetches one page with the given expansions, e.g. "version" or "body.view".
func (api *API) GetPageByID(ctx context.Context, id int, expand ...string) (*Content, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	return api.GetContentByID(ctx, GetContentByIDQuery{ID: id, Expand: expand})
}

// LastUpdatedBy returns whoever edited the page last, identified the way this deployment
// identifies users.
func (api *API) LastUpdatedBy(ctx context.Context, id int) (string, error) {
	page, err := api.GetPageByID(ctx, id, "version")
	if err != nil {
		return "", fmt.Errorf("confluence: couldn't get version of page %d: %w", id, err)
	}
	if page.Version == nil {
		return "", fmt.Errorf("confluence: found nil .Version field for page %d", id)
	}

	return api.Deployment.Identify(page.Version.By), nil
}

// GetContentHistory returns the history summary of a page, including its last update.
func (api *API) GetContentHistory(ctx context.Context, id int) (*History, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	return api.GetHistory(ctx, GetHistoryQuery{ID: id, Expand: []string{"lastUpdated"}})
}

// CreatePage creates a page in a space.  A parentID of 0 creates it in the root of the space.
func (api *API) CreatePage(ctx context.Context, space, title string, parentID int, value string, repr Representation) (*Content, error) {
	body, err := NewBody(value, repr)
	if err != nil {
		return nil, err
	}

	content := &Content{
		Type:  "page",
		Title: title,
		Space: &Space{Key: space},
		Body:  body,
	}
	if parentID > 0 {
		content.Ancestors = []Ancestor{{ID: strconv.Itoa(parentID)}}
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	created, err := api.CreateContent(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't create page '%s' in %s: %w", title, space, err)
	}

	return created, nil
}

// UpdatePage replaces the body of an existing page, bumping its version.
func (api *API) UpdatePage(ctx context.Context, id int, title string, value string, repr Representation, minorEdit bool, message string) (*Content, error) {
	body, err := NewBody(value, repr)
	if err != nil {
		return nil, err
	}

	current, err := api.GetPageByID(ctx, id, "version")
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get current version of page %d: %w", id, err)
	}
	if current.Version == nil {
		return nil, fmt.Errorf("confluence: found nil .Version field for page %d", id)
	}
	if title == "" {
		title = current.Title
	}

	content := &Content{
		ID:    strconv.Itoa(id),
		Type:  "page",
		Title: title,
		Body:  body,
		Version: &Version{
			Number:    current.Version.Number + 1,
			MinorEdit: minorEdit,
			Message:   message,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	updated, err := api.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't update page %d: %w", id, err)
	}

	return updated, nil
}

// GetChildIDList returns the IDs of the direct children of a page.
func (api *API) GetChildIDList(ctx context.Context, id int) ([]int, error) {
	ids := []int{}

	query := GetChildPagesQuery{
		ID:    id,
		Limit: 25,
	}

	for {
		children, err := func() (*ContentArray, error) {
			ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
			defer cancel()
			return api.getChildPages(ctx, query)
		}()
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list children of %d: %w", id, err)
		}

		for _, child := range children.Results {
			childID, err := child.IntID()
			if err != nil {
				return nil, err
			}
			ids = append(ids, childID)
		}

		if children.Links.Next == "" {
			break
		}

		q, err := url.Parse(children.Links.Next)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't parse _links.next: %w", err)
		}
		start, err := strconv.Atoi(q.Query().Get("start"))
		if err != nil {
			return nil, fmt.Errorf("confluence: expected parameter 'start' was not a number: %w", err)
		}
		if start <= query.Start {
			return nil, fmt.Errorf("confluence: pagination of children of %d didn't advance", id)
		}
		query.Start = start
	}

	return ids, nil
}

// IsNotFound reports whether a title search found no page.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound)
}
