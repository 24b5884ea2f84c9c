package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrResidualMarker means a placeholder survived rendering.
// It can only happen when the table does not cover the document.
var ErrResidualMarker = errors.New("placeholder left after rendering")

// Render substitutes every marker of doc with the value of its variable.
// Values are inserted verbatim and never scanned for placeholders.
func Render(doc *Document, table *Table) (string, error) {
	pairs := make([]string, 0, 2*len(table.marks))
	for _, marker := range table.marks {
		name := table.markers[marker]
		v, ok := table.vars[name]
		if !ok || !v.Resolved() {
			return "", fmt.Errorf("render %s: variable %s is not resolved", marker, name)
		}
		pairs = append(pairs, marker, v.Text())
	}
	if !covers(doc, table) {
		return "", ErrResidualMarker
	}
	return strings.NewReplacer(pairs...).Replace(doc.Text()), nil
}

// covers reports whether every placeholder in the template text is a known marker.
func covers(doc *Document, table *Table) bool {
	strip := make([]string, 0, 2*len(table.marks))
	for _, marker := range table.marks {
		strip = append(strip, marker, "")
	}
	return !HasMarker(strings.NewReplacer(strip...).Replace(doc.Text()))
}

// WriteFile atomically replaces path with content.
// The text is written to a temporary file next to path and renamed into place.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move config into place: %w", err)
	}
	return nil
}
