package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Auth: Auth{URL: "https://confluence.example.com", Username: "jdoe"},
		Pages: map[string]Page{
			"page1": {Title: "T", Space: "DOCS", File: "t.wiki"},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.Auth.URL = "" }, wantErr: "URL"},
		{name: "bad url", mutate: func(c *Config) { c.Auth.URL = "not a url" }, wantErr: "URL"},
		{name: "missing username", mutate: func(c *Config) { c.Auth.Username = "" }, wantErr: "Username"},
		{name: "no pages", mutate: func(c *Config) { c.Pages = nil }, wantErr: "at least one page"},
		{
			name:    "page without space",
			mutate:  func(c *Config) { c.Pages["page1"] = Page{Title: "T", File: "t.wiki"} },
			wantErr: "pages.page1",
		},
		{
			name:    "unknown file format",
			mutate:  func(c *Config) { c.Pages["page1"] = Page{Title: "T", Space: "S", File: "t", FileFormat: "rst"} },
			wantErr: "FileFormat",
		},
		{
			name: "two pages from stdin",
			mutate: func(c *Config) {
				c.Pages["page1"] = Page{Title: "One", Space: "S", File: StdinFile, FileFormat: "confluencewiki"}
				c.Pages["page2"] = Page{Title: "Two", Space: "S", File: StdinFile, FileFormat: "confluencewiki"}
			},
			wantErr: "only one page can be read from stdin, found pages.page1, pages.page2",
		},
		{
			name: "one page from stdin",
			mutate: func(c *Config) {
				c.Pages["page1"] = Page{Title: "One", Space: "S", File: StdinFile, FileFormat: "confluencewiki"}
				c.Pages["page2"] = Page{Title: "Two", Space: "S", File: "two.wiki"}
			},
		},
		{
			name:   "known file format",
			mutate: func(c *Config) { c.Pages["page1"] = Page{Title: "T", Space: "S", File: "t", FileFormat: "markdown"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
