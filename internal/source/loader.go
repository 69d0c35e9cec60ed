// Package source resolves documents given either inline or as a path to a
// plain-text file. Decoding PDF or DOCX files is left to whoever produces the text.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrEmpty is returned when a source resolves to blank text.
var ErrEmpty = errors.New("document is empty")

// Source describes how to load a text document.
type Source struct {
	// Name is used in error messages to give more context about the document.
	Name string
	// Value is inline text provided via configuration or flags.
	Value string
	// File points to a plain-text file. When set it takes precedence over Value.
	File string
}

// Load returns the resolved document text. When File is set it takes
// precedence over Value. Leading and trailing whitespace is removed; blank
// documents fail with ErrEmpty, and files that are not valid UTF-8 are
// rejected since they are most likely binary formats.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "document"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s file %q is not plain UTF-8 text", name, file)
		}
		src.Value = string(data)
		src.File = file
	}

	text := strings.TrimSpace(src.Value)
	if text == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q: %w", name, src.File, ErrEmpty)
		}
		return "", fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	return text, nil
}
