package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trec/internal/capture"
	"trec/internal/config"
	"trec/internal/library"
	"trec/internal/session"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "import <journal-or-recording>",
		Short: "Add a capture journal or recording to the library",
		Long: "Import accepts either a raw capture journal (JSONL written during a live\n" +
			"session) or a finished " + session.FileExtension + " recording. Journals are finalized first:\n" +
			"correction events are applied and terminal artifacts stripped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			sess, err := loadImportSource(path)
			if err != nil {
				return err
			}

			return ctx.withCatalog(func(catalog *library.Catalog) error {
				entry, err := catalog.Import(cmd.Context(), sess, strings.TrimSpace(title))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %q as %s\n", entry.Title, shortID(entry.ID))
				fmt.Fprintf(out, "  %d frames, %s, stored at %s\n",
					entry.FrameCount, formatDuration(entry.DurationMS), entry.Path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title for the library entry")
	return cmd
}

func loadImportSource(path string) (session.Session, error) {
	if strings.HasSuffix(path, session.FileExtension) {
		sess, err := session.Load(path)
		if err != nil {
			return session.Session{}, fmt.Errorf("load recording %q: %w", path, err)
		}
		return sess, nil
	}

	meta, events, err := capture.ReadLogFile(path)
	if err != nil {
		return session.Session{}, fmt.Errorf("read capture journal %q: %w", path, err)
	}
	return capture.Finalize(events, meta), nil
}
