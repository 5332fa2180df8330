package config

// Field body keys.
const (
	KeyIndexed    = "indexed"
	KeyStored     = "stored"
	KeyFast       = "fast"
	KeyFieldnorms = "fieldnorms"
	KeyRecord     = "record"
	KeyExpandDots = "expand_dots"
	KeyTokenizer  = "tokenizer"
	KeyNormalizer = "normalizer"
)

// FieldOptions holds the optional indexing attributes of a field.
// Tokenizer is normally the output of Tokenizer and is embedded as-is.
type FieldOptions struct {
	Indexed    Option[bool]     `json:"indexed" yaml:"indexed"`
	Stored     Option[bool]     `json:"stored" yaml:"stored"`
	Fast       Option[bool]     `json:"fast" yaml:"fast"`
	Fieldnorms Option[bool]     `json:"fieldnorms" yaml:"fieldnorms"`
	Record     Option[string]   `json:"record" yaml:"record"`
	ExpandDots Option[bool]     `json:"expand_dots" yaml:"expand_dots"`
	Tokenizer  Option[Document] `json:"tokenizer" yaml:"-"`
	Normalizer Option[string]   `json:"normalizer" yaml:"normalizer"`
}

// Field builds the document describing how a single field is indexed:
//
//	{name: {...supplied options}}
//
// With no options supplied the body is empty, which tells the engine to
// use its defaults for every attribute.
func Field(name string, opts FieldOptions) Document {
	body := Document{}

	put(body, KeyIndexed, opts.Indexed, Bool)
	put(body, KeyStored, opts.Stored, Bool)
	put(body, KeyFast, opts.Fast, Bool)
	put(body, KeyFieldnorms, opts.Fieldnorms, Bool)
	put(body, KeyRecord, opts.Record, String)
	put(body, KeyExpandDots, opts.ExpandDots, Bool)
	put(body, KeyTokenizer, opts.Tokenizer, Nested)
	put(body, KeyNormalizer, opts.Normalizer, String)

	return Document{name: Nested(body)}
}
