package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trec/internal/deadtime"
	"trec/internal/library"
)

func newCompressCommand(ctx *commandContext) *cobra.Command {
	var thresholdMS int64
	var capMS int64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compress <id-or-path>",
		Short: "Shrink long idle gaps in a recording",
		Long: "Compress rewrites the timeline so pauses longer than the threshold are\n" +
			"reduced, keeping the pacing of active typing intact. The defaults come from\n" +
			"the dead_time section of the configuration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := deadtime.Options{
				ThresholdMS: cfg.DeadTime.ThresholdMS,
				CapMS:       cfg.DeadTime.CapMS,
			}
			if cmd.Flags().Changed("threshold") {
				opts.ThresholdMS = thresholdMS
			}
			if cmd.Flags().Changed("cap") {
				opts.CapMS = capMS
			}
			if opts.ThresholdMS <= 0 || opts.CapMS <= 0 {
				return fmt.Errorf("threshold and cap must be positive (got %d, %d)", opts.ThresholdMS, opts.CapMS)
			}
			if opts.CapMS > opts.ThresholdMS {
				return fmt.Errorf("cap (%d) must not exceed threshold (%d)", opts.CapMS, opts.ThresholdMS)
			}

			return ctx.withCatalog(func(catalog *library.Catalog) error {
				resolved, err := resolveSession(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}

				before := resolved.Session.Duration().Milliseconds()
				compressed := deadtime.Compress(resolved.Session, opts)
				after := compressed.Duration().Milliseconds()

				target, err := saveEdited(cmd.Context(), catalog, resolved, compressed, outputPath)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if after < before {
					fmt.Fprintf(out, "Compressed %s to %s, wrote %s\n",
						formatDuration(before), formatDuration(after), target)
				} else {
					fmt.Fprintf(out, "No gaps above %dms; recording unchanged, wrote %s\n",
						opts.ThresholdMS, target)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&thresholdMS, "threshold", deadtime.DefaultThresholdMS, "Gap length in milliseconds that counts as dead time")
	cmd.Flags().Int64Var(&capMS, "cap", deadtime.DefaultCapMS, "Length in milliseconds a compressed gap is reduced to")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this path instead of in place")
	return cmd
}
