package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mrbreo/paradedb/internal/errors"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindString
	KindDocument
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindDocument:
		return "document"
	default:
		return "invalid"
	}
}

// Value is a single entry in a Document: a bool, an integer, a string or a
// nested Document. The zero Value is KindInvalid and is never produced by
// the builders.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	doc  Document
}

// Bool wraps a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int wraps an integer.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// String wraps a string.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Nested wraps a document. The document is copied.
func Nested(d Document) Value { return Value{kind: KindDocument, doc: d.Clone()} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean held by v and whether v is a KindBool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer held by v and whether v is a KindInt.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string held by v and whether v is a KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsDocument returns a copy of the nested document.
func (v Value) AsDocument() (Document, bool) {
	if v.kind != KindDocument {
		return nil, false
	}
	return v.doc.Clone(), true
}

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindDocument:
		return v.doc.Equal(other.doc)
	default:
		return true
	}
}

// MarshalJSON encodes the held variant. A zero Value is an error.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindString:
		return json.Marshal(v.s)
	case KindDocument:
		return json.Marshal(v.doc)
	default:
		return nil, errors.NewDocumentValueError("", "value has no kind")
	}
}

// Document is the configuration object handed to the indexing engine.
// Key order carries no meaning.
type Document map[string]Value

// Keys returns the document keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for k, v := range d {
		if v.kind == KindDocument {
			v.doc = v.doc.Clone()
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both documents hold the same key/value pairs.
func (d Document) Equal(other Document) bool {
	if len(d) != len(other) {
		return false
	}
	for k, v := range d {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON always emits an object, never null.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(d))
}

// UnmarshalJSON accepts only objects whose values are booleans, integers,
// strings or objects of the same shape.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	doc, err := documentFromRaw("", raw)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// ParseDocument decodes a JSON object into a Document.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// String renders the document as compact JSON with sorted keys.
func (d Document) String() string {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf("<invalid document: %v>", err)
	}
	return string(data)
}

func documentFromRaw(path string, raw interface{}) (Document, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.NewDocumentValueError(path, fmt.Sprintf("expected object, got %s", jsonKind(raw)))
	}

	doc := make(Document, len(obj))
	for key, item := range obj {
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}

		switch val := item.(type) {
		case bool:
			doc[key] = Bool(val)
		case string:
			doc[key] = String(val)
		case json.Number:
			n, err := val.Int64()
			if err != nil {
				return nil, errors.NewDocumentValueError(childPath, "number '"+val.String()+"' is not an integer")
			}
			doc[key] = Int(n)
		case map[string]interface{}:
			nested, err := documentFromRaw(childPath, val)
			if err != nil {
				return nil, err
			}
			doc[key] = Value{kind: KindDocument, doc: nested}
		default:
			return nil, errors.NewDocumentValueError(childPath, jsonKind(item)+" values are not supported")
		}
	}
	return doc, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
