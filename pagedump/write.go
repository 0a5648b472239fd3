package pagedump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Write streams a document to w.
func Write(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, doc.Content); err != nil {
		return fmt.Errorf("pagedump: couldn't write page %d: %w", doc.ID, err)
	}
	return nil
}

// WriteFile saves a document.  If dest is an existing directory the file is named after the page,
// otherwise dest is the file itself.  Returns the path written.
func WriteFile(dest string, doc Document) (string, error) {
	abs, err := homedir.Expand(dest)
	if err != nil {
		return "", fmt.Errorf("pagedump: unable to expand homedir: %w", err)
	}

	if stat, err := os.Stat(abs); err == nil && stat.IsDir() {
		name, err := FileName(doc.ID, doc.Title)
		if err != nil {
			return "", fmt.Errorf("pagedump: couldn't determine page path: %w", err)
		}
		abs = filepath.Join(abs, name)
	}

	directory := filepath.Dir(abs)
	if err := os.MkdirAll(directory, 0750); err != nil {
		return "", fmt.Errorf("pagedump: couldn't create directory %s: %w", directory, err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("pagedump: couldn't create file %s: %w", abs, err)
	}
	defer f.Close()

	if err := Write(f, doc); err != nil {
		return "", err
	}

	return abs, nil
}
