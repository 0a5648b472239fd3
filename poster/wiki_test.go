package poster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/toothbrush/confluence-poster/confluence"
)

type fakePage struct {
	id        int
	space     string
	title     string
	parentID  int
	body      string
	repr      confluence.Representation
	version   int
	minorEdit bool
	message   string
	lastBy    string
}

// fakeWiki keeps pages in memory and behaves like a small Confluence.
type fakeWiki struct {
	pages  []*fakePage
	nextID int

	// returned from every write when set
	writeErr error
	// returned from every title search when set
	searchErr error
	writes    int
}

func newFakeWiki(pages ...*fakePage) *fakeWiki {
	w := &fakeWiki{nextID: 1000}
	for _, p := range pages {
		if p.version == 0 {
			p.version = 1
		}
		w.pages = append(w.pages, p)
	}
	return w
}

func (w *fakeWiki) find(space, title string) *fakePage {
	for _, p := range w.pages {
		if p.space == space && p.title == title {
			return p
		}
	}
	return nil
}

func (w *fakeWiki) byID(id int) *fakePage {
	for _, p := range w.pages {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (w *fakeWiki) GetPageByTitle(ctx context.Context, space, title string, expand ...string) (*confluence.Content, error) {
	if w.searchErr != nil {
		return nil, w.searchErr
	}
	p := w.find(space, title)
	if p == nil {
		return nil, fmt.Errorf("%w: page '%s' in space %s", confluence.ErrPageNotFound, title, space)
	}
	return &confluence.Content{
		ID:    strconv.Itoa(p.id),
		Title: p.title,
		Links: &confluence.Links{WebUI: "/pages/viewpage.action?pageId=" + strconv.Itoa(p.id)},
	}, nil
}

func (w *fakeWiki) LastUpdatedBy(ctx context.Context, id int) (string, error) {
	p := w.byID(id)
	if p == nil {
		return "", confluence.ErrNotFound
	}
	return p.lastBy, nil
}

func (w *fakeWiki) CreatePage(ctx context.Context, space, title string, parentID int, value string, repr confluence.Representation) (*confluence.Content, error) {
	w.writes++
	if w.writeErr != nil {
		return nil, w.writeErr
	}
	w.nextID++
	p := &fakePage{id: w.nextID, space: space, title: title, parentID: parentID, body: value, repr: repr, version: 1, lastBy: "jdoe"}
	w.pages = append(w.pages, p)
	return &confluence.Content{ID: strconv.Itoa(p.id), Title: title}, nil
}

func (w *fakeWiki) UpdatePage(ctx context.Context, id int, title string, value string, repr confluence.Representation, minorEdit bool, message string) (*confluence.Content, error) {
	w.writes++
	if w.writeErr != nil {
		return nil, w.writeErr
	}
	p := w.byID(id)
	if p == nil {
		return nil, confluence.ErrNotFound
	}
	p.body = value
	p.repr = repr
	p.version++
	p.minorEdit = minorEdit
	p.message = message
	p.lastBy = "jdoe"
	return &confluence.Content{ID: strconv.Itoa(id), Title: p.title}, nil
}

func (w *fakeWiki) GetChildIDList(ctx context.Context, id int) ([]int, error) {
	ids := []int{}
	for _, p := range w.pages {
		if p.parentID == id {
			ids = append(ids, p.id)
		}
	}
	return ids, nil
}

func (w *fakeWiki) PageURL(c *confluence.Content) string {
	return "https://confluence.example.com" + c.Links.WebUI
}

func (w *fakeWiki) HistoryURL(pageID int) string {
	return fmt.Sprintf("https://confluence.example.com/pages/viewpreviousversions.action?pageId=%d", pageID)
}

// newTestState answers prompts from input and collects everything printed in out.
func newTestState(input string) (*State, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &State{
		Prompter: NewPrompter(strings.NewReader(input), out),
		Out:      out,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, out
}
