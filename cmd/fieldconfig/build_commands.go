package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrbreo/paradedb/config"
)

func newTokenizerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenizer NAME",
		Short: "Print a tokenizer document",
		Example: `  fieldconfig tokenizer simple
  fieldconfig tokenizer ngram --min-gram 3 --max-gram 3 --prefix-only=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := tokenizerOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			return writeDocument(cmd, cmd.OutOrStdout(), config.Tokenizer(args[0], opts))
		},
	}

	flags := cmd.Flags()
	flags.Int("min-gram", 0, "Minimum n-gram length")
	flags.Int("max-gram", 0, "Maximum n-gram length")
	flags.Bool("prefix-only", false, "Only emit n-grams anchored at the start of a token")
	flags.String("language", "", "Language for stemming tokenizers")
	flags.String("pattern", "", "Regular expression for pattern tokenizers")

	return cmd
}

func tokenizerOptionsFromFlags(cmd *cobra.Command) (config.TokenizerOptions, error) {
	var opts config.TokenizerOptions
	var err error
	flags := cmd.Flags()

	if opts.MinGram, err = optionalFlag(cmd, "min-gram", flags.GetInt); err != nil {
		return opts, err
	}
	if opts.MaxGram, err = optionalFlag(cmd, "max-gram", flags.GetInt); err != nil {
		return opts, err
	}
	if opts.PrefixOnly, err = optionalFlag(cmd, "prefix-only", flags.GetBool); err != nil {
		return opts, err
	}
	if opts.Language, err = optionalFlag(cmd, "language", flags.GetString); err != nil {
		return opts, err
	}
	if opts.Pattern, err = optionalFlag(cmd, "pattern", flags.GetString); err != nil {
		return opts, err
	}
	return opts, nil
}

func newFieldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field NAME",
		Short: "Print a field document",
		Example: `  fieldconfig field title
  fieldconfig field body --indexed --stored=false \
    --tokenizer "$(fieldconfig tokenizer ngram --min-gram 3 --max-gram 3)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := fieldOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			return writeDocument(cmd, cmd.OutOrStdout(), config.Field(args[0], opts))
		},
	}

	flags := cmd.Flags()
	flags.Bool("indexed", false, "Index the field")
	flags.Bool("stored", false, "Store the original value")
	flags.Bool("fast", false, "Keep a columnar copy for sorting and aggregation")
	flags.Bool("fieldnorms", false, "Store field norms for scoring")
	flags.String("record", "", "What to record in the postings (e.g. basic, freq, position)")
	flags.Bool("expand-dots", false, "Expand dotted keys in JSON fields")
	flags.String("tokenizer", "", "Tokenizer document as JSON")
	flags.String("normalizer", "", "Normalizer for fast fields (e.g. raw, lowercase)")

	return cmd
}

func fieldOptionsFromFlags(cmd *cobra.Command) (config.FieldOptions, error) {
	var opts config.FieldOptions
	var err error
	flags := cmd.Flags()

	bools := []struct {
		name   string
		target *config.Option[bool]
	}{
		{"indexed", &opts.Indexed},
		{"stored", &opts.Stored},
		{"fast", &opts.Fast},
		{"fieldnorms", &opts.Fieldnorms},
		{"expand-dots", &opts.ExpandDots},
	}
	for _, b := range bools {
		if *b.target, err = optionalFlag(cmd, b.name, flags.GetBool); err != nil {
			return opts, err
		}
	}

	if opts.Record, err = optionalFlag(cmd, "record", flags.GetString); err != nil {
		return opts, err
	}
	if opts.Normalizer, err = optionalFlag(cmd, "normalizer", flags.GetString); err != nil {
		return opts, err
	}

	raw, err := optionalFlag(cmd, "tokenizer", flags.GetString)
	if err != nil {
		return opts, err
	}
	if text, ok := raw.Get(); ok {
		doc, err := config.ParseDocument([]byte(text))
		if err != nil {
			return opts, fmt.Errorf("parse --tokenizer: %w", err)
		}
		opts.Tokenizer = config.Some(doc)
	}

	return opts, nil
}
