package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestSetKey(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]any
		key      string
		value    any
		expected map[string]any
	}{
		{
			name:     "top level",
			doc:      map[string]any{},
			key:      "author",
			value:    "jdoe",
			expected: map[string]any{"author": "jdoe"},
		},
		{
			name:     "creates tables",
			doc:      map[string]any{},
			key:      "pages.page1.page_title",
			value:    "Release notes",
			expected: map[string]any{"pages": map[string]any{"page1": map[string]any{"page_title": "Release notes"}}},
		},
		{
			name:     "updates existing value",
			doc:      map[string]any{"auth": map[string]any{"url": "https://old.example.com", "username": "jdoe"}},
			key:      "auth.url",
			value:    "https://new.example.com",
			expected: map[string]any{"auth": map[string]any{"url": "https://new.example.com", "username": "jdoe"}},
		},
		{
			name:     "inserts next to existing keys",
			doc:      map[string]any{"auth": map[string]any{"url": "https://confluence.example.com"}},
			key:      "auth.is_cloud",
			value:    true,
			expected: map[string]any{"auth": map[string]any{"url": "https://confluence.example.com", "is_cloud": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetKey(tt.doc, tt.key, tt.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, tt.doc); diff != "" {
				t.Errorf("SetKey() mismatch (-want +got):\n%s", diff)
			}
			got, ok := LookupKey(tt.doc, tt.key)
			if !ok || got != tt.value {
				t.Errorf("LookupKey(%s) = %v, %v", tt.key, got, ok)
			}
		})
	}
}

func TestSetKey_Errors(t *testing.T) {
	err := SetKey(map[string]any{"auth": "oops"}, "auth.url", "x")
	var malformed *MalformedConfigError
	if !errors.As(err, &malformed) || malformed.Key != "auth" {
		t.Errorf("expected MalformedConfigError for auth, got %v", err)
	}

	if err := SetKey(map[string]any{}, "auth..url", "x"); err == nil {
		t.Errorf("expected error for empty key segment")
	}
}

func TestLookupKey_Missing(t *testing.T) {
	doc := map[string]any{"auth": map[string]any{"url": "x"}, "author": "jdoe"}
	for _, key := range []string{"nope", "auth.username", "author.name"} {
		if v, ok := LookupKey(doc, key); ok {
			t.Errorf("LookupKey(%s) = %v, expected missing", key, v)
		}
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument on missing file: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}

	if err := SetKey(doc, "author", "jdoe"); err != nil {
		t.Fatal(err)
	}
	if err := SetKey(doc, "pages.page1.page_title", "Release notes"); err != nil {
		t.Fatal(err)
	}
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	var decoded map[string]any
	if _, err := toml.DecodeFile(path, &decoded); err != nil {
		t.Fatalf("written file doesn't parse: %v", err)
	}
	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
