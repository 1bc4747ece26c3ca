package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trec/internal/session"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	libraryDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	libraryDir := filepath.Join(base, "library")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\nlibrary_dir = %q\nlog_dir = %q\n\n[logging]\nformat = \"console\"\nlevel = \"error\"\n",
		libraryDir, logDir,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, libraryDir: libraryDir}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeRecording drops a small finished recording at path.
func writeRecording(t *testing.T, path string) session.Session {
	t.Helper()

	start := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Second)
	sess := session.New(start, session.TerminalInfo{Shell: "bash", WorkingDir: "/tmp"})
	sess.EndTime = &end
	sess.Frames = []session.Frame{
		{Timestamp: 0, Content: "$ ", Kind: session.KindOutput},
		{Timestamp: 200, Content: "ls", Kind: session.KindInput},
		{Timestamp: 900, Content: "README.md\r\n", Kind: session.KindOutput},
		{Timestamp: 5800, Content: "$ ", Kind: session.KindOutput},
	}
	if err := session.Save(path, sess); err != nil {
		t.Fatalf("save recording: %v", err)
	}
	return sess
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
