package template

import (
	"errors"
	"fmt"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// ParseError describes a malformed placeholder.
type ParseError struct {
	Line   int
	Marker string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Marker, e.Reason)
}

// findMarker returns the placeholder on a line, if any.
// Only one placeholder is recognized per line: the body runs from the last
// "{{" that still has a "}}" after it up to the last "}}" of the line.
func findMarker(line string) (marker, body string, ok bool) {
	end := strings.LastIndex(line, closeDelim)
	if end < 0 {
		return "", "", false
	}
	start := strings.LastIndex(line[:end], openDelim)
	if start < 0 {
		return "", "", false
	}
	body = line[start+len(openDelim) : end]
	return openDelim + body + closeDelim, body, true
}

// parseBody parses NAME[(TYPE)] [: DEFAULT].
func parseBody(body string) (Variable, error) {
	text := strings.TrimSpace(body)
	if text == "" {
		return Variable{}, errors.New("empty placeholder")
	}

	key, def, hasDefault := strings.Cut(text, ":")
	key = strings.TrimSpace(key)
	def = strings.TrimSpace(def)

	typ := TypeString
	name := key
	if open := strings.Index(key, "("); open >= 0 {
		if !strings.HasSuffix(key, ")") {
			return Variable{}, errors.New("unterminated type annotation")
		}
		name = strings.TrimSpace(key[:open])
		t, err := ParseType(strings.TrimSpace(key[open+1 : len(key)-1]))
		if err != nil {
			return Variable{}, err
		}
		typ = t
	}
	if !validName(name) {
		return Variable{}, fmt.Errorf("invalid variable name %q", name)
	}

	v := Variable{Name: name, Type: typ}
	switch {
	case hasDefault:
		val, err := typ.Coerce(def)
		if err != nil {
			return Variable{}, fmt.Errorf("default for %s: %w", name, err)
		}
		v.Value = val
	case typ == TypeInteger:
		v.Value = 0
	}
	return v, nil
}

// validName accepts any key text without whitespace or annotation syntax,
// so names like minio-address parse as written.
func validName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\r():{}")
}

// Parse builds the variable table for a document.
// Every malformed placeholder is reported; if there is any, no table is returned.
func Parse(doc *Document) (*Table, error) {
	table := NewTable()
	var errs []error
	for i, line := range strings.Split(doc.Text(), "\n") {
		marker, body, ok := findMarker(line)
		if !ok {
			continue
		}
		v, err := parseBody(body)
		if err != nil {
			errs = append(errs, &ParseError{Line: i + 1, Marker: marker, Reason: err.Error()})
			continue
		}
		table.declare(marker, v)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse template %s: %w", doc.Path(), errors.Join(errs...))
	}
	return table, nil
}

// HasMarker reports whether any line of text still carries a placeholder.
func HasMarker(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if _, _, ok := findMarker(line); ok {
			return true
		}
	}
	return false
}
