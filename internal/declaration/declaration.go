// Package declaration loads field declarations written in YAML and turns
// each one into its field configuration document.
//
// A declaration file looks like:
//
//	fields:
//	  - name: body
//	    indexed: true
//	    stored: false
//	    tokenizer:
//	      name: ngram
//	      min_gram: 3
//	      max_gram: 3
//
// Attributes left out of a declaration are left out of its document.
// Each field renders to its own document; nothing is merged.
package declaration

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/mrbreo/paradedb/config"
	"github.com/mrbreo/paradedb/internal/errors"
)

// TokenizerDeclaration describes a tokenizer by name plus its options.
type TokenizerDeclaration struct {
	config.TokenizerOptions `yaml:",inline"`

	Name string `yaml:"name"`
}

// FieldDeclaration describes one field. The tokenizer is declared by
// descriptor and built with config.Tokenizer when the field is rendered.
type FieldDeclaration struct {
	config.FieldOptions `yaml:",inline"`

	Name      string                `yaml:"name"`
	Tokenizer *TokenizerDeclaration `yaml:"tokenizer"`
}

// File is the top-level shape of a declaration file.
type File struct {
	Fields []FieldDeclaration `yaml:"fields"`
}

// Load reads and parses the declaration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("declaration file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes declarations from YAML. Unknown attributes are rejected so
// that a typo never silently disappears from the rendered document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every declaration carries the names the builders
// need. Attribute values themselves are not checked.
func (f *File) Validate() error {
	var problems []string

	for i, field := range f.Fields {
		if strings.TrimSpace(field.Name) == "" {
			problems = append(problems, fmt.Sprintf("fields[%d]: name is required", i))
		}
		if field.Tokenizer != nil && strings.TrimSpace(field.Tokenizer.Name) == "" {
			problems = append(problems, fmt.Sprintf("fields[%d].tokenizer: name is required", i))
		}
	}

	if len(problems) > 0 {
		return errors.NewValidationError("fields", strings.Join(problems, "; "))
	}
	return nil
}

// Document builds the tokenizer document for this declaration.
func (t TokenizerDeclaration) Document() config.Document {
	return config.Tokenizer(t.Name, t.TokenizerOptions)
}

// Document builds the field document for this declaration.
func (d FieldDeclaration) Document() config.Document {
	opts := d.FieldOptions
	if d.Tokenizer != nil {
		opts.Tokenizer = config.Some(d.Tokenizer.Document())
	}
	return config.Field(d.Name, opts)
}

// Render returns one document per declared field, in file order.
func (f *File) Render() []config.Document {
	docs := make([]config.Document, 0, len(f.Fields))
	for _, field := range f.Fields {
		docs = append(docs, field.Document())
	}
	return docs
}
