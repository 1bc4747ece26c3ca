package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trec/internal/library"
	"trec/internal/session"
)

type sessionInfo struct {
	Entry      *library.Entry `json:"entry,omitempty"`
	Path       string         `json:"path"`
	Format     string         `json:"formatVersion"`
	Shell      string         `json:"shell"`
	WorkingDir string         `json:"workingDir,omitempty"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Frames     int            `json:"frames"`
	Inputs     int            `json:"inputFrames"`
	Outputs    int            `json:"outputFrames"`
	DurationMS int64          `json:"durationMs"`
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <id-or-path>",
		Short: "Show details for a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(catalog *library.Catalog) error {
				resolved, err := resolveSession(cmd.Context(), catalog, args[0])
				if err != nil {
					return err
				}

				info := describeSession(resolved)
				if asJSON {
					return writeJSON(cmd, info)
				}

				out := cmd.OutOrStdout()
				if info.Entry != nil {
					fmt.Fprintf(out, "ID:        %s\n", info.Entry.ID)
					fmt.Fprintf(out, "Title:     %s\n", info.Entry.Title)
					fmt.Fprintf(out, "Created:   %s\n", formatTimestamp(info.Entry.CreatedAt))
				}
				fmt.Fprintf(out, "Path:      %s\n", info.Path)
				fmt.Fprintf(out, "Format:    %s\n", info.Format)
				fmt.Fprintf(out, "Shell:     %s\n", info.Shell)
				if info.WorkingDir != "" {
					fmt.Fprintf(out, "Directory: %s\n", info.WorkingDir)
				}
				fmt.Fprintf(out, "Size:      %dx%d\n", info.Width, info.Height)
				fmt.Fprintf(out, "Duration:  %s\n", formatDuration(info.DurationMS))
				fmt.Fprintf(out, "Frames:    %d (%d input, %d output)\n", info.Frames, info.Inputs, info.Outputs)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit details as JSON")
	return cmd
}

func describeSession(resolved *resolvedSession) sessionInfo {
	sess := resolved.Session
	dims := sess.EffectiveDimensions()

	inputs := 0
	for _, frame := range sess.Frames {
		if frame.Kind == session.KindInput {
			inputs++
		}
	}

	return sessionInfo{
		Entry:      resolved.Entry,
		Path:       resolved.Path,
		Format:     sess.FormatVersion,
		Shell:      sess.TerminalInfo.Shell,
		WorkingDir: sess.TerminalInfo.WorkingDir,
		Width:      dims.Width,
		Height:     dims.Height,
		Frames:     len(sess.Frames),
		Inputs:     inputs,
		Outputs:    len(sess.Frames) - inputs,
		DurationMS: sess.Duration().Milliseconds(),
	}
}
