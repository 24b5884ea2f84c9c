package template

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultName is the origin reported for the embedded template.
const DefaultName = "milvus.yaml.template"

//go:embed milvus.yaml.template
var defaultTemplate string

// Document is an immutable template text.
type Document struct {
	path string
	text string
}

// NewDocument wraps text that did not come from disk.
func NewDocument(path, text string) *Document {
	return &Document{path: path, text: text}
}

// Default returns the template shipped with the launcher.
func Default() *Document {
	return NewDocument(DefaultName, defaultTemplate)
}

// Load reads a template from path. An empty path selects the default template.
func Load(path string) (*Document, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return NewDocument(path, string(data)), nil
}

// Path returns where the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Text returns the raw template text.
func (d *Document) Text() string {
	return d.text
}
