package pagedump

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/toothbrush/confluence-poster/confluence"
	"gopkg.in/yaml.v3"
)

// Header is the YAML front matter written above a dumped page.
type Header struct {
	Title       string    `yaml:"title"`
	ObjectID    int       `yaml:"object_id"`
	Space       string    `yaml:"space,omitempty"`
	Version     int       `yaml:"version"`
	Timestamp   time.Time `yaml:"timestamp,omitempty"`
	URI         string    `yaml:"uri"`
	LastEditor  string    `yaml:"last_editor,omitempty"`
	MinorEdit   bool      `yaml:"minor_edit"`
	AncestorIDs []int     `yaml:"ancestor_ids,omitempty"`
	ChildIDs    []int     `yaml:"child_ids,omitempty"`
}

// Page is everything we know about a remote page that goes into a dump.
type Page struct {
	Content  *confluence.Content
	History  *confluence.History
	ChildIDs []int
}

// Document is a converted page, ready to be written out.
type Document struct {
	ID      int
	Title   string
	Content string
}

// Converter renders pages to Markdown.  Links are made absolute against the wiki's base URI.
type Converter struct {
	BaseURI    *url.URL
	Deployment confluence.Deployment
}

func (c *Converter) ToMarkdown(page Page) (Document, error) {
	content := page.Content
	if content == nil {
		return Document{}, fmt.Errorf("pagedump: nothing to convert")
	}

	// md.NewConverter only accepts a hostname, not a base URI, so the scheme is patched in here.
	// See https://github.com/JohannesKaufmann/html-to-markdown/issues/44
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				// we can't do anything with this url because it is invalid
				return rawURL
			}

			if u.Scheme == "data" {
				// this is a data uri (for example an inline base64 image)
				return rawURL
			}

			if u.Scheme == "" {
				u.Scheme = c.BaseURI.Scheme
			}
			if u.Host == "" {
				u.Host = domain // this comes from the first arg to md.NewConverter
			}

			return u.String()
		},
	}

	converter := md.NewConverter(c.BaseURI.Host, true, opt)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())
	if content.Body == nil || content.Body.View == nil {
		return Document{}, fmt.Errorf("pagedump: found nil .Body.View field for page %s", content.ID)
	}

	markdown, err := converter.ConvertString(content.Body.View.Value)
	if err != nil {
		return Document{}, fmt.Errorf("pagedump: failed to convert to Markdown: %w", err)
	}

	id, err := content.IntID()
	if err != nil {
		return Document{}, fmt.Errorf("pagedump: %w", err)
	}
	if content.Version == nil {
		return Document{}, fmt.Errorf("pagedump: found nil .Version field for page %s", content.ID)
	}

	header := Header{
		Title:      content.Title,
		ObjectID:   id,
		Version:    content.Version.Number,
		LastEditor: c.Deployment.Identify(content.Version.By),
		MinorEdit:  content.Version.MinorEdit,
		ChildIDs:   page.ChildIDs,
	}
	if content.Links != nil {
		header.URI = c.BaseURI.String() + content.Links.WebUI
		if _, err := url.Parse(header.URI); err != nil {
			return Document{}, fmt.Errorf("pagedump: generated URL is bunk: %w", err)
		}
	}
	if content.Space != nil {
		header.Space = content.Space.Key
	}
	if content.Version.When != "" {
		timestamp, err := time.Parse(time.RFC3339, content.Version.When)
		if err != nil {
			return Document{}, fmt.Errorf("pagedump: couldn't parse timestamp %s: %w", content.Version.When, err)
		}
		header.Timestamp = timestamp
	}
	for _, ancestor := range content.Ancestors {
		ancestorID, err := strconv.Atoi(ancestor.ID)
		if err != nil {
			return Document{}, fmt.Errorf("pagedump: object ID %s not an int: %w", ancestor.ID, err)
		}
		header.AncestorIDs = append(header.AncestorIDs, ancestorID)
	}
	// The history endpoint knows about minor edits even when the expanded version doesn't.
	if h := page.History; h != nil && h.LastUpdated != nil {
		header.MinorEdit = h.LastUpdated.MinorEdit
		if header.LastEditor == "" {
			header.LastEditor = c.Deployment.Identify(h.LastUpdated.By)
		}
	}

	yamlHeader, err := yaml.Marshal(header)
	if err != nil {
		return Document{}, fmt.Errorf("pagedump: couldn't marshal header YAML: %w", err)
	}

	body := fmt.Sprintf(`---
%s
---
%s
`,
		strings.TrimSpace(string(yamlHeader)),
		markdown)

	return Document{
		ID:      id,
		Title:   content.Title,
		Content: body,
	}, nil
}
