package config

// Tokenizer document keys.
const (
	KeyType       = "type"
	KeyMinGram    = "min_gram"
	KeyMaxGram    = "max_gram"
	KeyPrefixOnly = "prefix_only"
	KeyLanguage   = "language"
	KeyPattern    = "pattern"
)

// TokenizerOptions holds the optional tuning attributes of a tokenizer.
// Values are passed through unchanged; ranges such as MinGram <= MaxGram
// are left to the indexing engine.
type TokenizerOptions struct {
	MinGram    Option[int]    `json:"min_gram" yaml:"min_gram"`
	MaxGram    Option[int]    `json:"max_gram" yaml:"max_gram"`
	PrefixOnly Option[bool]   `json:"prefix_only" yaml:"prefix_only"`
	Language   Option[string] `json:"language" yaml:"language"`
	Pattern    Option[string] `json:"pattern" yaml:"pattern"`
}

// Tokenizer builds the document describing a single tokenizer:
//
//	{"type": name, ...supplied options}
func Tokenizer(name string, opts TokenizerOptions) Document {
	doc := Document{KeyType: String(name)}

	put(doc, KeyMinGram, opts.MinGram, intValue)
	put(doc, KeyMaxGram, opts.MaxGram, intValue)
	put(doc, KeyPrefixOnly, opts.PrefixOnly, Bool)
	put(doc, KeyLanguage, opts.Language, String)
	put(doc, KeyPattern, opts.Pattern, String)

	return doc
}
