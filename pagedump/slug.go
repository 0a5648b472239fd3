package pagedump

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug turns a page title into something safe for a file name.
func Slug(title string) (string, error) {
	str := nonAlnum.ReplaceAllString(title, " ")
	str = strings.ToLower(str)
	str = strings.Join(strings.Fields(str), "-")

	if len(str) > 100 {
		str = str[:100]
	}

	str = strings.Trim(str, "-")

	if len(str) < 2 {
		return "", fmt.Errorf("pagedump: slug too short: title was '%s'", title)
	}

	return str, nil
}

// FileName is where a dumped page goes inside a directory: <id>-<slug>.md
func FileName(id int, title string) (string, error) {
	slug, err := Slug(title)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s.md", id, slug), nil
}
