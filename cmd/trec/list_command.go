package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trec/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(catalog *library.Catalog) error {
				entries, err := catalog.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if entries == nil {
						entries = []library.Entry{}
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Library is empty; use `trec import` to add a recording")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						shortID(entry.ID),
						entry.Title,
						formatTimestamp(entry.CreatedAt),
						formatDuration(entry.DurationMS),
						strconv.Itoa(entry.FrameCount),
						entry.Shell,
						fmt.Sprintf("%dx%d", entry.Width, entry.Height),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]tableColumn{
						{Title: "ID"},
						{Title: "TITLE"},
						{Title: "CREATED"},
						{Title: "DURATION", AlignRight: true},
						{Title: "FRAMES", AlignRight: true},
						{Title: "SHELL"},
						{Title: "SIZE", AlignRight: true},
					},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit entries as JSON")
	return cmd
}
