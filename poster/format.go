package poster

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/confluence"
)

// ErrUnsupportedFormat means a page's file can't be posted as it is.
var ErrUnsupportedFormat = errors.New("poster: unsupported file format")

// FileFormat is the markup a local page file is written in.
type FileFormat string

const (
	Markdown       FileFormat = config.FormatMarkdown
	ConfluenceWiki FileFormat = config.FormatConfluenceWiki
	HTML           FileFormat = config.FormatHTML
)

var extensions = map[string]FileFormat{
	".markdown": Markdown,
	".mdown":    Markdown,
	".mkdn":     Markdown,
	".md":       Markdown,
	".mkd":      Markdown,
	".mdwn":     Markdown,
	".mdtxt":    Markdown,
	".mdtext":   Markdown,
	".text":     Markdown,
	".Rmd":      Markdown,

	".confluencewiki": ConfluenceWiki,
	".wiki":           ConfluenceWiki,

	".html": HTML,
}

// GuessFileFormat picks a format from the file extension.  Extensions are case sensitive.
func GuessFileFormat(path string) (FileFormat, error) {
	if f, ok := extensions[filepath.Ext(path)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: file format of file %s could not be guessed", ErrUnsupportedFormat, path)
}

// ParseFileFormat accepts the values allowed for file_format.
func ParseFileFormat(s string) (FileFormat, error) {
	switch f := FileFormat(s); f {
	case Markdown, ConfluenceWiki, HTML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// RepresentationForFormat tells which body representation the wiki expects for a format.  Markdown
// has none: the server can't render it.
func RepresentationForFormat(f FileFormat) (confluence.Representation, error) {
	switch f {
	case ConfluenceWiki:
		return confluence.RepresentationWiki, nil
	case HTML:
		return confluence.RepresentationEditor, nil
	case Markdown:
		return "", fmt.Errorf("%w: markdown is not supported by the wiki, convert the file to html or confluencewiki", ErrUnsupportedFormat)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
