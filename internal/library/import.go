package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"trec/internal/session"
)

// ErrImportLocked indicates another trec process holds the library import
// lock.
var ErrImportLocked = errors.New("another import is already in progress")

// Import writes the session document into the library directory under a
// fresh ID and registers it in the catalog. The whole operation runs under a
// directory lock so concurrent trec processes cannot collide; the session
// value itself is never modified.
func (c *Catalog) Import(ctx context.Context, sess session.Session, title string) (*Entry, error) {
	lock := flock.New(filepath.Join(c.dir, ".import.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, ErrImportLocked
	}
	defer func() { _ = lock.Unlock() }()

	id := uuid.NewString()
	path := filepath.Join(c.dir, id+session.FileExtension)
	if err := session.Save(path, sess); err != nil {
		return nil, fmt.Errorf("write recording: %w", err)
	}

	if title == "" {
		title = defaultTitle(sess)
	}
	dims := sess.EffectiveDimensions()
	entry := Entry{
		ID:         id,
		Title:      title,
		Path:       path,
		CreatedAt:  sess.StartTime,
		DurationMS: sess.Duration().Milliseconds(),
		FrameCount: len(sess.Frames),
		Shell:      sess.TerminalInfo.Shell,
		Width:      dims.Width,
		Height:     dims.Height,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := c.insert(ctx, entry); err != nil {
		// Don't leave an orphaned file behind a failed registration.
		_ = os.Remove(path)
		return nil, err
	}
	return &entry, nil
}

func defaultTitle(sess session.Session) string {
	shell := sess.TerminalInfo.Shell
	if shell == "" {
		shell = "session"
	}
	if sess.StartTime.IsZero() {
		return shell
	}
	return fmt.Sprintf("%s %s", shell, sess.StartTime.Format("2006-01-02 15:04"))
}
