package testsupport

import (
	"testing"
	"time"

	"trec/internal/session"
)

// SampleSession builds a small finalized session for tests.
func SampleSession(t testing.TB) session.Session {
	t.Helper()

	start := time.Date(2026, 4, 18, 14, 30, 0, 0, time.UTC)
	end := start.Add(8 * time.Second)
	s := session.New(start, session.TerminalInfo{
		Shell:      "zsh",
		WorkingDir: "/home/dev",
		ShellPath:  "/usr/bin/zsh",
	})
	s.EndTime = &end
	s.Dimensions = &session.Dimensions{Width: 120, Height: 32}
	s.Frames = []session.Frame{
		{Timestamp: 0, Content: "$ ", Kind: session.KindOutput},
		{Timestamp: 400, Content: "g", Kind: session.KindInput},
		{Timestamp: 520, Content: "it status", Kind: session.KindInput},
		{Timestamp: 1800, Content: "On branch main\r\n", Kind: session.KindOutput},
		{Timestamp: 7900, Content: "$ ", Kind: session.KindOutput},
	}
	return s
}
