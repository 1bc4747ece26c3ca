package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"trec/internal/library"
	"trec/internal/session"
	"trec/internal/testsupport"
)

func TestImportWritesRecordingAndRegistersEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	catalog := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	sess := testsupport.SampleSession(t)
	entry, err := catalog.Import(ctx, sess, "git status demo")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if entry.ID == "" {
		t.Fatal("expected generated entry ID")
	}
	if !strings.HasSuffix(entry.Path, session.FileExtension) {
		t.Fatalf("path %q missing %s extension", entry.Path, session.FileExtension)
	}
	if filepath.Dir(entry.Path) != catalog.Dir() {
		t.Fatalf("recording written to %q, want library dir %q", filepath.Dir(entry.Path), catalog.Dir())
	}
	if entry.FrameCount != len(sess.Frames) {
		t.Fatalf("frame count = %d, want %d", entry.FrameCount, len(sess.Frames))
	}
	if entry.DurationMS != sess.Duration().Milliseconds() {
		t.Fatalf("duration = %dms, want %dms", entry.DurationMS, sess.Duration().Milliseconds())
	}
	if entry.Width != 120 || entry.Height != 32 {
		t.Fatalf("dimensions = %dx%d, want 120x32", entry.Width, entry.Height)
	}

	loaded, err := session.Load(entry.Path)
	if err != nil {
		t.Fatalf("Load recording: %v", err)
	}
	if len(loaded.Frames) != len(sess.Frames) {
		t.Fatalf("loaded %d frames, want %d", len(loaded.Frames), len(sess.Frames))
	}

	stored, err := catalog.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Title != "git status demo" {
		t.Fatalf("title = %q, want %q", stored.Title, "git status demo")
	}
}

func TestImportDerivesDefaultTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	catalog := testsupport.MustOpenCatalog(t, cfg)

	sess := testsupport.SampleSession(t)
	entry, err := catalog.Import(context.Background(), sess, "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := "zsh 2026-04-18 14:30"
	if entry.Title != want {
		t.Fatalf("title = %q, want %q", entry.Title, want)
	}
}

func TestImportRefusesWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	catalog := testsupport.MustOpenCatalog(t, cfg)

	lock := flock.New(filepath.Join(catalog.Dir(), ".import.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if !locked {
		t.Fatal("could not take the import lock for the test")
	}
	defer lock.Unlock()

	_, err = catalog.Import(context.Background(), testsupport.SampleSession(t), "blocked")
	if !errors.Is(err, library.ErrImportLocked) {
		t.Fatalf("Import = %v, want ErrImportLocked", err)
	}
}

func TestImportTwiceCreatesDistinctEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	catalog := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	sess := testsupport.SampleSession(t)
	if _, err := catalog.Import(ctx, sess, "first"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	// Each import generates a fresh ID, so a second import of the same
	// session is a new entry rather than a conflict.
	second, err := catalog.Import(ctx, sess, "second")
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}

	entries, err := catalog.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	files, err := filepath.Glob(filepath.Join(catalog.Dir(), "*"+session.FileExtension))
	if err != nil {
		t.Fatalf("glob recordings: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d recordings on disk, want 2", len(files))
	}
	if _, err := os.Stat(second.Path); err != nil {
		t.Fatalf("second recording missing: %v", err)
	}
}
