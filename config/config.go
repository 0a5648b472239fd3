package config

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Config is the effective configuration after all layers have been merged.
type Config struct {
	// Expected last editor of every page.  Pages touched by somebody else won't be overwritten
	// unless --force is given.
	AuthorToCheck string `toml:"author_to_check" yaml:"author_to_check,omitempty"`
	Author        string `toml:"author" yaml:"author,omitempty"`

	Auth  Auth            `toml:"auth" yaml:"auth"`
	Pages map[string]Page `toml:"pages" yaml:"pages"`
}

// Auth holds the connection details.  The `flag` tags name the persistent command line flags these
// fields are bound onto.
type Auth struct {
	URL      string   `toml:"url" yaml:"url" flag:"confluence-url"`
	Username string   `toml:"username" yaml:"username" flag:"auth-username"`
	IsCloud  *bool    `toml:"is_cloud" yaml:"is_cloud,omitempty" flag:"is-cloud"`
	TokenCmd []string `toml:"token_cmd" yaml:"token_cmd,omitempty" flag:"auth-token-cmd"`
}

// Page describes one local file and where it should end up in the wiki.
type Page struct {
	Title       string `toml:"page_title" yaml:"page_title"`
	Space       string `toml:"page_space" yaml:"page_space"`
	File        string `toml:"page_file" yaml:"page_file"`
	ParentTitle string `toml:"page_parent_title" yaml:"page_parent_title,omitempty"`
	FileFormat  string `toml:"file_format" yaml:"file_format,omitempty"`
}

// ExpectedAuthor returns the configured author to check against, if any.
func (c Config) ExpectedAuthor() string {
	if c.AuthorToCheck != "" {
		return c.AuthorToCheck
	}
	return c.Author
}

// PageKeys returns the keys of the pages table in processing order.
func (c Config) PageKeys() []string {
	keys := maps.Keys(c.Pages)
	slices.Sort(keys)
	return keys
}

// OrderedPages returns the configured pages in processing order.
func (c Config) OrderedPages() []Page {
	pages := make([]Page, 0, len(c.Pages))
	for _, k := range c.PageKeys() {
		pages = append(pages, c.Pages[k])
	}
	return pages
}

// SinglePage returns the only configured page.  Overrides like --page-title make no sense when more
// than one page is configured.
func (c Config) SinglePage() (string, Page, error) {
	if len(c.Pages) != 1 {
		return "", Page{}, fmt.Errorf("config: expected exactly one page in config, found %d", len(c.Pages))
	}
	k := c.PageKeys()[0]
	return k, c.Pages[k], nil
}
