package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/confluence"
)

// StdinFile as page_file reads the page content from stdin.
const StdinFile = config.StdinFile

// ErrStdinReused is returned when more than one page wants its content from stdin.
var ErrStdinReused = errors.New("poster: only one page can be read from stdin")

// PostedPage is a configured page plus what we learn about it while posting.
type PostedPage struct {
	config.Page

	// 0 until the page has been found or created.
	PageID         int
	VersionComment string
}

// Format returns the declared file format, or guesses it from the file name.
func (p PostedPage) Format() (FileFormat, error) {
	if p.FileFormat != "" {
		return ParseFileFormat(p.FileFormat)
	}
	if p.File == StdinFile {
		return "", fmt.Errorf("%w: set file_format when reading page '%s' from stdin", ErrUnsupportedFormat, p.Title)
	}
	return GuessFileFormat(p.File)
}

// Representation returns the body representation this page has to be posted in.
func (p PostedPage) Representation() (confluence.Representation, error) {
	f, err := p.Format()
	if err != nil {
		return "", err
	}
	return RepresentationForFormat(f)
}

// ReadContent loads the page body from its file, or from stdin.
func (p PostedPage) ReadContent(stdin io.Reader) (string, error) {
	if p.File == StdinFile {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("poster: couldn't read page content from stdin: %w", err)
		}
		return string(b), nil
	}

	path, err := homedir.Expand(p.File)
	if err != nil {
		return "", fmt.Errorf("poster: unable to expand homedir: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("poster: couldn't read page file: %w", err)
	}
	return string(b), nil
}

// Target says where content goes.  A PageID updates that page; otherwise a page is created in
// Space, under ParentID if set.
type Target struct {
	Space    string
	Title    string
	PageID   int
	ParentID int
}

type Poster struct {
	Wiki Wiki
}

// Post pushes content to the wiki and returns the ID of the page written.  Minor edits only apply
// to updates.
func (p *Poster) Post(ctx context.Context, content string, target Target, repr confluence.Representation, minorEdit bool, comment string) (int, error) {
	if target.PageID > 0 {
		updated, err := p.Wiki.UpdatePage(ctx, target.PageID, target.Title, content, repr, minorEdit, comment)
		if err != nil {
			return 0, fmt.Errorf("poster: couldn't update page '%s': %w", target.Title, err)
		}
		if updated.ID == "" {
			return target.PageID, nil
		}
		return updated.IntID()
	}

	created, err := p.Wiki.CreatePage(ctx, target.Space, target.Title, target.ParentID, content, repr)
	if err != nil {
		return 0, fmt.Errorf("poster: couldn't create page '%s': %w", target.Title, err)
	}
	return created.IntID()
}
