package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trec/internal/editor"
	"trec/internal/library"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var startMS int64
	var endMS int64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "trim <id-or-path>",
		Short: "Cut a recording down to a time window",
		Long: "Trim keeps the frames between --start and --end (milliseconds relative to\n" +
			"the recording start) and re-bases the timeline so playback begins\n" +
			"immediately. Omitting --end keeps everything after --start.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if startMS < 0 {
				return fmt.Errorf("--start must not be negative (got %d)", startMS)
			}
			if endMS != editor.Unbounded && endMS < startMS {
				return fmt.Errorf("--end (%d) must not precede --start (%d)", endMS, startMS)
			}
			return ctx.withCatalog(func(catalog *library.Catalog) error {
				resolved, err := resolveSession(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}

				trimmed := editor.Trim(resolved.Session, startMS, endMS)
				target, err := saveEdited(cmd.Context(), catalog, resolved, trimmed, outputPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Trimmed to %d frames (%s), wrote %s\n",
					len(trimmed.Frames), formatDuration(trimmed.Duration().Milliseconds()), target)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&startMS, "start", 0, "Start of the window in milliseconds")
	cmd.Flags().Int64Var(&endMS, "end", editor.Unbounded, "End of the window in milliseconds (-1 for end of recording)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this path instead of in place")
	return cmd
}

func newResizeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "resize <id-or-path> <width> <height>",
		Short: "Change the recorded terminal dimensions",
		Long: "Resize rewrites the stored grid size used for playback. Values that do not\n" +
			"parse or fall below the minimum usable size fall back to the 80x24 default.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(catalog *library.Catalog) error {
				resolved, err := resolveSession(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}

				resized := editor.Resize(resolved.Session, args[1], args[2])
				target, err := saveEdited(cmd.Context(), catalog, resolved, resized, outputPath)
				if err != nil {
					return err
				}
				dims := resized.EffectiveDimensions()
				fmt.Fprintf(cmd.OutOrStdout(), "Resized to %dx%d, wrote %s\n", dims.Width, dims.Height, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this path instead of in place")
	return cmd
}
