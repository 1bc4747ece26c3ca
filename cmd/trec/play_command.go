package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"trec/internal/deadtime"
	"trec/internal/library"
	"trec/internal/logging"
	"trec/internal/playback"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var speed float64
	var compress bool
	var startMS int64

	cmd := &cobra.Command{
		Use:   "play <id-or-path>",
		Short: "Replay a recording in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("speed") {
				speed = cfg.Playback.DefaultSpeed
			}
			if speed <= 0 {
				return fmt.Errorf("--speed must be positive (got %g)", speed)
			}

			return ctx.withCatalog(func(catalog *library.Catalog) error {
				resolved, err := resolveSession(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}

				// Log to the file only; stderr output would interleave with
				// the replayed frames.
				logger, err := logging.New(logging.Options{
					Level:       cfg.Logging.Level,
					Format:      cfg.Logging.Format,
					OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "trec.log")},
				})
				if err != nil {
					logger = logging.Discard()
				}

				renderer := newConsoleRenderer(cmd.OutOrStdout())
				scheduler := playback.New(resolved.Session, renderer, playback.Options{
					Speed:    speed,
					MinDelay: time.Duration(cfg.Playback.MinDelayMS) * time.Millisecond,
					DeadTime: deadtime.Options{
						ThresholdMS: cfg.DeadTime.ThresholdMS,
						CapMS:       cfg.DeadTime.CapMS,
					},
					Logger: logger,
				})
				if compress {
					scheduler.SetDeadTimeCompression(true)
				}
				if startMS > 0 {
					scheduler.SeekTo(startMS)
				}

				scheduler.Play(cmd.Context())
				select {
				case <-scheduler.Done():
				case <-cmd.Context().Done():
					scheduler.Pause()
					return cmd.Context().Err()
				}

				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&speed, "speed", "s", 0, "Playback speed multiplier (default from config)")
	cmd.Flags().BoolVar(&compress, "dead-time", false, "Compress long idle gaps during playback")
	cmd.Flags().Int64Var(&startMS, "start", 0, "Start playback at this offset in milliseconds")
	return cmd
}
