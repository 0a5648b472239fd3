package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// File formats a page may declare with file_format.
const (
	FormatMarkdown       = "markdown"
	FormatConfluenceWiki = "confluencewiki"
	FormatHTML           = "html"
)

// StdinFile as page_file reads the page content from stdin.  Stdin can only be read once, so at
// most one page may use it.
const StdinFile = "-"

// Validate ensures the effective config can drive a posting run.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Auth),
		validation.Field(&c.Pages, validation.Required.Error("at least one page must be configured"), validation.Skip),
	)
	if err != nil {
		return fmt.Errorf("config: invalid config: %w", err)
	}

	for _, k := range c.PageKeys() {
		if err := c.Pages[k].Validate(); err != nil {
			return fmt.Errorf("config: invalid config for pages.%s: %w", k, err)
		}
	}

	if fromStdin := c.StdinPages(); len(fromStdin) > 1 {
		return fmt.Errorf("config: only one page can be read from stdin, found pages.%s",
			strings.Join(fromStdin, ", pages."))
	}

	return nil
}

// StdinPages returns the keys of pages read from stdin.
func (c Config) StdinPages() []string {
	keys := []string{}
	for _, k := range c.PageKeys() {
		if c.Pages[k].File == StdinFile {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate checks the connection details.
func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.URL, validation.Required, is.URL),
		validation.Field(&a.Username, validation.Required),
	)
}

// Validate checks a single page entry.
func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Space, validation.Required),
		validation.Field(&p.File, validation.Required),
		validation.Field(&p.FileFormat, validation.In(FormatMarkdown, FormatConfluenceWiki, FormatHTML)),
	)
}
