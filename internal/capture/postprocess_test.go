package capture_test

import (
	"testing"
	"time"

	"trec/internal/capture"
	"trec/internal/session"
)

var captureStart = time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

func contents(frames []session.Frame) []string {
	out := make([]string, 0, len(frames))
	for _, frame := range frames {
		out = append(out, frame.Content)
	}
	return out
}

func TestFinalizeRemovesCorrectedKeystrokes(t *testing.T) {
	events := []capture.Event{
		capture.Keystroke(100, "h"),
		capture.Keystroke(200, "e"),
		capture.Keystroke(300, "l"),
		capture.Keystroke(400, "l"),
		capture.Keystroke(500, "o"),
		capture.Deletion(600),
		capture.Deletion(700),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	want := []string{"h", "e", "l"}
	got := contents(s.Frames)
	if len(got) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: expected %q, got %q", i, want[i], got[i])
		}
		if s.Frames[i].Kind != session.KindInput {
			t.Fatalf("frame %d: expected input kind", i)
		}
	}
}

func TestFinalizeDeletionWithEmptyBufferIsNoOp(t *testing.T) {
	events := []capture.Event{
		capture.Deletion(10),
		capture.Keystroke(100, "a"),
		capture.Deletion(200),
		capture.Deletion(300),
		capture.Keystroke(400, "b"),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	got := contents(s.Frames)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected single frame %q, got %v", "b", got)
	}
}

func TestFinalizeDeletionOnlyPopsInputFrames(t *testing.T) {
	events := []capture.Event{
		capture.Keystroke(100, "x"),
		capture.Output(150, "x"),
		capture.Deletion(200),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	got := contents(s.Frames)
	if len(got) != 1 {
		t.Fatalf("expected the output echo to survive, got %v", got)
	}
	if s.Frames[0].Kind != session.KindOutput {
		t.Fatal("expected surviving frame to be output")
	}
}

func TestFinalizeStripsOutputArtifacts(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"backspace byte", "ab\bc", "abc"},
		{"delete byte", "ab\x7fc", "abc"},
		{"cursor left", "ab\x1b[Dc", "abc"},
		{"erase line", "ab\x1b[Kc", "abc"},
		{"erase combo", "abc\b\x1b[K", "abc"},
		{"untouched color", "\x1b[32mok\x1b[0m", "\x1b[32mok\x1b[0m"},
	}
	for _, tc := range cases {
		s := capture.Finalize([]capture.Event{capture.Output(0, tc.raw)}, capture.Metadata{StartTime: captureStart})
		if len(s.Frames) != 1 {
			t.Fatalf("%s: expected one frame, got %d", tc.name, len(s.Frames))
		}
		if s.Frames[0].Content != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, s.Frames[0].Content)
		}
	}
}

func TestFinalizeDropsPureNoiseFrames(t *testing.T) {
	events := []capture.Event{
		capture.Output(0, "$ "),
		capture.Output(100, "\b\b\x1b[K"),
		capture.Output(200, ""),
		capture.Output(300, "done\r\n"),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	got := contents(s.Frames)
	if len(got) != 2 || got[0] != "$ " || got[1] != "done\r\n" {
		t.Fatalf("expected noise-only frames dropped, got %v", got)
	}
}

func TestFinalizeRepairsTimestampOrder(t *testing.T) {
	events := []capture.Event{
		capture.Output(500, "late"),
		capture.Keystroke(100, "a"),
		capture.Output(300, "mid"),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	for i := 1; i < len(s.Frames); i++ {
		if s.Frames[i].Timestamp < s.Frames[i-1].Timestamp {
			t.Fatalf("frames out of order at %d: %v", i, s.Frames)
		}
	}
	if len(s.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(s.Frames))
	}
}

func TestFinalizeFlushSetsEndTimeAndStopsStream(t *testing.T) {
	end := captureStart.Add(42 * time.Second)
	events := []capture.Event{
		capture.Keystroke(100, "a"),
		capture.Flush(42000, end),
		capture.Keystroke(43000, "ignored"),
	}

	s := capture.Finalize(events, capture.Metadata{StartTime: captureStart})

	if s.EndTime == nil || !s.EndTime.Equal(end) {
		t.Fatalf("expected end time %v, got %v", end, s.EndTime)
	}
	if len(s.Frames) != 1 {
		t.Fatalf("expected events after flush to be ignored, got %v", contents(s.Frames))
	}
	if s.Duration() != 42*time.Second {
		t.Fatalf("expected 42s duration, got %v", s.Duration())
	}
}

func TestFinalizeNormalizesDimensions(t *testing.T) {
	meta := capture.Metadata{
		StartTime:  captureStart,
		Dimensions: &session.Dimensions{Width: 3, Height: 1},
	}
	s := capture.Finalize(nil, meta)
	if s.Dimensions == nil || *s.Dimensions != session.DefaultDimensions {
		t.Fatalf("expected default dimensions for implausible grid, got %+v", s.Dimensions)
	}
}
