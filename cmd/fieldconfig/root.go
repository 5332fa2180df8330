package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrbreo/paradedb/config"
)

const version = "1.0.0"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fieldconfig",
		Short:         "Build field and tokenizer configuration documents for search indexes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("pretty", false, "Indent JSON output")

	root.AddCommand(newServeCommand())
	root.AddCommand(newTokenizerCommand())
	root.AddCommand(newFieldCommand())
	root.AddCommand(newRenderCommand())

	return root
}

// writeDocument prints doc as a single line of JSON, or indented when
// --pretty is set.
func writeDocument(cmd *cobra.Command, out io.Writer, doc config.Document) error {
	pretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return err
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

// optionalFlag reads a flag only when it was set on the command line, so
// an untouched flag never turns into a default value in the document.
func optionalFlag[T any](cmd *cobra.Command, name string, get func(string) (T, error)) (config.Option[T], error) {
	if !cmd.Flags().Changed(name) {
		return config.None[T](), nil
	}
	v, err := get(name)
	if err != nil {
		return config.None[T](), fmt.Errorf("read --%s: %w", name, err)
	}
	return config.Some(v), nil
}
