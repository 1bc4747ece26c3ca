package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trec/internal/capture"
	"trec/internal/library"
	"trec/internal/session"
)

func TestImportListInfoRemoveFlow(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	out, _, err := runCLI(t, env, "import", recording, "--title", "demo run")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported \"demo run\"")

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "demo run")
	requireContains(t, out, "bash")

	out, _, err = runCLI(t, env, "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var entries []library.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode list output: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	out, _, err = runCLI(t, env, "info", entries[0].ID)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	requireContains(t, out, "demo run")
	requireContains(t, out, "bash")

	out, _, err = runCLI(t, env, "remove", entries[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "Removed")
	if _, err := os.Stat(entries[0].Path); !os.IsNotExist(err) {
		t.Fatalf("expected recording deleted, stat err = %v", err)
	}

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	requireContains(t, out, "Library is empty")
}

func TestImportFinalizesCaptureJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	journal := filepath.Join(env.baseDir, "capture.jsonl")
	meta := capture.Metadata{
		StartTime:    time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
		TerminalInfo: session.TerminalInfo{Shell: "zsh"},
	}
	events := []capture.Event{
		capture.Output(0, "$ "),
		capture.Keystroke(100, "l"),
		capture.Keystroke(200, "x"),
		capture.Deletion(300),
		capture.Keystroke(400, "s"),
		capture.Flush(1000, meta.StartTime.Add(time.Second)),
	}
	f, err := os.Create(journal)
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}
	if err := capture.WriteLog(f, meta, events); err != nil {
		t.Fatalf("write journal: %v", err)
	}
	f.Close()

	out, _, err := runCLI(t, env, "import", journal, "--title", "typed")
	if err != nil {
		t.Fatalf("import journal: %v", err)
	}
	requireContains(t, out, "Imported \"typed\"")

	out, _, err = runCLI(t, env, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []library.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode list output: %v", err)
	}
	var typed *library.Entry
	for i := range entries {
		if entries[i].Title == "typed" {
			typed = &entries[i]
		}
	}
	if typed == nil {
		t.Fatal("imported journal entry not listed")
	}

	sess, err := session.Load(typed.Path)
	if err != nil {
		t.Fatalf("load finalized recording: %v", err)
	}
	// The deletion removed the mistyped "x"; "$ ", "l", "s" survive.
	if len(sess.Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(sess.Frames))
	}
	if sess.Frames[1].Content != "l" || sess.Frames[2].Content != "s" {
		t.Fatalf("unexpected frames after finalize: %+v", sess.Frames)
	}
}

func TestTrimCommandRewritesRecording(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	out, _, err := runCLI(t, env, "trim", recording, "--start", "200", "--end", "1000")
	if err != nil {
		t.Fatalf("trim: %v", err)
	}
	requireContains(t, out, "Trimmed to 2 frames")

	sess, err := session.Load(recording)
	if err != nil {
		t.Fatalf("load trimmed: %v", err)
	}
	if len(sess.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(sess.Frames))
	}
	if sess.Frames[0].Timestamp != 0 {
		t.Fatalf("first frame at %dms, want re-based 0", sess.Frames[0].Timestamp)
	}
}

func TestTrimRejectsInvertedWindow(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	if _, _, err := runCLI(t, env, "trim", recording, "--start", "500", "--end", "100"); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestResizeCommandFallsBackOnBadInput(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	out, _, err := runCLI(t, env, "resize", recording, "not-a-number", "30")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	requireContains(t, out, "Resized to 80x24")
}

func TestCompressCommandShortensRecording(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	output := filepath.Join(env.baseDir, "short"+session.FileExtension)
	out, _, err := runCLI(t, env, "compress", recording, "-o", output)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	requireContains(t, out, "Compressed")

	sess, err := session.Load(output)
	if err != nil {
		t.Fatalf("load compressed: %v", err)
	}
	// The 4.9s gap before the final prompt collapses to the 1s cap.
	if got := sess.Frames[len(sess.Frames)-1].Timestamp; got != 1900 {
		t.Fatalf("final frame at %dms, want 1900", got)
	}

	original, err := session.Load(recording)
	if err != nil {
		t.Fatalf("load original: %v", err)
	}
	if original.Frames[len(original.Frames)-1].Timestamp != 5800 {
		t.Fatal("compress -o must leave the source untouched")
	}
}

func TestPlayCommandReplaysToPipe(t *testing.T) {
	env := setupCLITestEnv(t)

	recording := filepath.Join(env.baseDir, "demo"+session.FileExtension)
	writeRecording(t, recording)

	out, _, err := runCLI(t, env, "play", recording, "--speed", "10000", "--dead-time")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "$ ls")
	requireContains(t, out, "README.md")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh-config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}

	out, _, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "library_dir")
	requireContains(t, out, env.libraryDir)
}
