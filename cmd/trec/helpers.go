package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trec/internal/config"
	"trec/internal/library"
	"trec/internal/session"
)

// resolvedSession is a recording located either through the catalog or
// directly on disk.
type resolvedSession struct {
	Session session.Session
	Path    string
	Entry   *library.Entry
}

// resolveSession treats arg as a catalog ID first and falls back to a file
// path. Path arguments never touch the catalog, so edits to loose files leave
// the library untouched.
func resolveSession(ctx context.Context, catalog *library.Catalog, arg string) (*resolvedSession, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errors.New("session ID or path is required")
	}

	entry, err := lookupEntry(ctx, catalog, arg)
	if err == nil {
		sess, loadErr := session.Load(entry.Path)
		if loadErr != nil {
			return nil, fmt.Errorf("load recording %s: %w", entry.ID, loadErr)
		}
		return &resolvedSession{Session: sess, Path: entry.Path, Entry: entry}, nil
	}
	if !errors.Is(err, library.ErrNotFound) {
		return nil, err
	}

	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("no catalog entry or file matches %q", arg)
	}
	sess, err := session.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load recording %q: %w", path, err)
	}
	return &resolvedSession{Session: sess, Path: path}, nil
}

// lookupEntry matches an exact catalog ID or a unique ID prefix, so the
// shortened IDs shown by `trec list` work as arguments.
func lookupEntry(ctx context.Context, catalog *library.Catalog, id string) (*library.Entry, error) {
	entry, err := catalog.Get(ctx, id)
	if err == nil || !errors.Is(err, library.ErrNotFound) {
		return entry, err
	}

	entries, listErr := catalog.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	var match *library.Entry
	for i := range entries {
		if strings.HasPrefix(entries[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("session ID prefix %q is ambiguous", id)
			}
			match = &entries[i]
		}
	}
	if match == nil {
		return nil, library.ErrNotFound
	}
	return match, nil
}

// saveEdited writes the edited session, either to outputPath or back over the
// source, and refreshes the catalog row when the source was a catalog entry.
func saveEdited(ctx context.Context, catalog *library.Catalog, src *resolvedSession, edited session.Session, outputPath string) (string, error) {
	target := strings.TrimSpace(outputPath)
	if target == "" {
		target = src.Path
	} else {
		expanded, err := config.ExpandPath(target)
		if err != nil {
			return "", err
		}
		target = expanded
	}

	if err := session.Save(target, edited); err != nil {
		return "", fmt.Errorf("write recording: %w", err)
	}

	if src.Entry != nil && target == src.Path {
		dims := edited.EffectiveDimensions()
		entry := *src.Entry
		entry.DurationMS = edited.Duration().Milliseconds()
		entry.FrameCount = len(edited.Frames)
		entry.Width = dims.Width
		entry.Height = dims.Height
		if err := catalog.Update(ctx, entry); err != nil {
			return "", fmt.Errorf("refresh catalog entry: %w", err)
		}
	}
	return target, nil
}

// writeJSON prints v as indented JSON for the --json flags.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func formatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	return d.Truncate(100 * time.Millisecond).String()
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
