package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trec/internal/library"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var keepFile bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a recording from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(catalog *library.Catalog) error {
				entry, err := lookupEntry(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}
				removed, err := catalog.Remove(cmd.Context(), entry.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if keepFile {
					fmt.Fprintf(out, "Removed %q from the catalog; recording kept at %s\n", removed.Title, removed.Path)
					return nil
				}
				if err := os.Remove(removed.Path); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("delete recording file: %w", err)
				}
				fmt.Fprintf(out, "Removed %q and deleted %s\n", removed.Title, removed.Path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&keepFile, "keep-file", false, "Remove the catalog entry but keep the recording on disk")
	return cmd
}
