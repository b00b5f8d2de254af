// Package document finds timetable documents and reads their text as
// lines, page by page.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOpen wraps every failure to open or decode a document.
var ErrOpen = errors.New("cannot open document")

// ErrNoText marks a page that shows text which does not decode to anything
// readable, typically because its font uses a custom encoding or CMap.
var ErrNoText = errors.New("page text not readable")

// Document is one timetable file. Its Name identifies the program.
type Document struct {
	// Name is the file name without its extension.
	Name string

	// Path is the file location.
	Path string
}

// New describes the document at path.
func New(path string) Document {
	base := filepath.Base(path)
	return Document{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
	}
}

// Discover lists the regular files in dir whose names end with one of the
// given extensions. The suffix match is case-sensitive and not recursive.
// Documents are returned sorted by file name.
func Discover(dir string, extensions []string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !HasExtension(entry.Name(), extensions) {
			continue
		}
		docs = append(docs, New(filepath.Join(dir, entry.Name())))
	}

	return docs, nil
}

// HasExtension reports whether name ends with any of extensions.
func HasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
