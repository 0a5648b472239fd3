package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ReadDocument reads one config file as a plain TOML document.  A missing file is an empty
// document.
func ReadDocument(path string) (map[string]any, error) {
	doc, err := readLayer(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	return doc, err
}

// LookupKey returns the value at a dotted key such as "auth.url".
func LookupKey(doc map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	node := doc
	for i, part := range parts {
		v, ok := node[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if node, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

// SetKey sets a dotted key, creating tables on the way.  A plain value in the way of a table is a
// MalformedConfigError.
func SetKey(doc map[string]any, dotted string, value any) error {
	parts := strings.Split(dotted, ".")
	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("config: invalid key %q", dotted)
		}
	}

	node := doc
	for i, part := range parts[:len(parts)-1] {
		next, ok := node[part]
		if !ok {
			table := map[string]any{}
			node[part] = table
			node = table
			continue
		}
		table, ok := next.(map[string]any)
		if !ok {
			return &MalformedConfigError{Key: strings.Join(parts[:i+1], ".")}
		}
		node = table
	}

	node[parts[len(parts)-1]] = value
	return nil
}

// WriteDocument saves a TOML document, creating its directory if needed.
func WriteDocument(path string, doc map[string]any) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("config: couldn't encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("config: couldn't create directory for %s: %w", path, err)
	}
	// may hold a token command
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("config: couldn't write %s: %w", path, err)
	}
	return nil
}
