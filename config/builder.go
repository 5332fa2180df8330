// Package config builds the field and tokenizer configuration documents
// consumed by the indexing engine's schema loader.
//
// Every optional attribute is an Option. A key is written to the output
// document only when its Option holds a value, so an omitted attribute
// never shows up as a false, zero or empty placeholder.
package config

// put writes key only when opt holds a value.
func put[T any](doc Document, key string, opt Option[T], wrap func(T) Value) {
	if v, ok := opt.Get(); ok {
		doc[key] = wrap(v)
	}
}

func intValue(v int) Value { return Int(int64(v)) }

// FieldKeys lists every key Field can place in a field body.
var FieldKeys = []string{
	KeyIndexed,
	KeyStored,
	KeyFast,
	KeyFieldnorms,
	KeyRecord,
	KeyExpandDots,
	KeyTokenizer,
	KeyNormalizer,
}

// TokenizerKeys lists every key Tokenizer can emit.
var TokenizerKeys = []string{
	KeyType,
	KeyMinGram,
	KeyMaxGram,
	KeyPrefixOnly,
	KeyLanguage,
	KeyPattern,
}
