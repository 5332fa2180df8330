package main

import (
	"github.com/spf13/cobra"

	"github.com/mrbreo/paradedb/internal/declaration"
)

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Print the field document of every declaration in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := declaration.Load(args[0])
			if err != nil {
				return err
			}
			for _, doc := range f.Render() {
				if err := writeDocument(cmd, cmd.OutOrStdout(), doc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
