package editor_test

import (
	"reflect"
	"testing"
	"time"

	"trec/internal/editor"
	"trec/internal/session"
)

func testSession(t *testing.T) session.Session {
	t.Helper()
	start := time.Date(2026, 7, 9, 8, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Second)
	s := session.New(start, session.TerminalInfo{Shell: "fish"})
	s.EndTime = &end
	s.Frames = []session.Frame{
		{Timestamp: 0, Content: "$ ", Kind: session.KindOutput},
		{Timestamp: 1000, Content: "m", Kind: session.KindInput},
		{Timestamp: 2000, Content: "ake", Kind: session.KindInput},
		{Timestamp: 4000, Content: "building...\r\n", Kind: session.KindOutput},
		{Timestamp: 9000, Content: "done\r\n", Kind: session.KindOutput},
	}
	return s
}

func TestResizeSetsDimensions(t *testing.T) {
	s := testSession(t)
	resized := editor.Resize(s, "132", "50")
	if resized.Dimensions == nil || resized.Dimensions.Width != 132 || resized.Dimensions.Height != 50 {
		t.Fatalf("unexpected dimensions: %+v", resized.Dimensions)
	}
	if s.Dimensions != nil {
		t.Fatal("resize mutated its input")
	}
}

func TestResizeNeverErrors(t *testing.T) {
	cases := []struct {
		name          string
		width, height string
	}{
		{"non-numeric", "abc", "xyz"},
		{"partial", "100", "tall"},
		{"empty", "", ""},
		{"out of range", "5", "2"},
	}
	for _, tc := range cases {
		resized := editor.Resize(testSession(t), tc.width, tc.height)
		if resized.Dimensions == nil || *resized.Dimensions != session.DefaultDimensions {
			t.Fatalf("%s: expected default fallback, got %+v", tc.name, resized.Dimensions)
		}
	}
}

func TestTrimRetainsAndRebases(t *testing.T) {
	s := testSession(t)
	trimmed := editor.Trim(s, 1000, 4000)

	want := []session.Frame{
		{Timestamp: 0, Content: "m", Kind: session.KindInput},
		{Timestamp: 1000, Content: "ake", Kind: session.KindInput},
		{Timestamp: 3000, Content: "building...\r\n", Kind: session.KindOutput},
	}
	if !reflect.DeepEqual(trimmed.Frames, want) {
		t.Fatalf("unexpected trim result:\n got %#v\nwant %#v", trimmed.Frames, want)
	}

	wantStart := s.StartTime.Add(time.Second)
	if !trimmed.StartTime.Equal(wantStart) {
		t.Fatalf("expected start shifted to %v, got %v", wantStart, trimmed.StartTime)
	}
	wantEnd := s.StartTime.Add(4 * time.Second)
	if trimmed.EndTime == nil || !trimmed.EndTime.Equal(wantEnd) {
		t.Fatalf("expected end clamped to %v, got %v", wantEnd, trimmed.EndTime)
	}

	// Original untouched.
	if s.Frames[0].Timestamp != 0 || len(s.Frames) != 5 {
		t.Fatal("trim mutated its input")
	}
}

func TestTrimUnbounded(t *testing.T) {
	s := testSession(t)
	trimmed := editor.Trim(s, 2000, editor.Unbounded)

	if len(trimmed.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(trimmed.Frames))
	}
	if trimmed.Frames[0].Timestamp != 0 || trimmed.Frames[2].Timestamp != 7000 {
		t.Fatalf("unexpected rebased timestamps: %+v", trimmed.Frames)
	}
	if trimmed.EndTime == nil || !trimmed.EndTime.Equal(*s.EndTime) {
		t.Fatalf("expected end time untouched for unbounded trim, got %v", trimmed.EndTime)
	}
}

func TestTrimEmptyRangeYieldsZeroFrames(t *testing.T) {
	s := testSession(t)
	trimmed := editor.Trim(s, 5000, 8000)
	if len(trimmed.Frames) != 0 {
		t.Fatalf("expected zero frames, got %+v", trimmed.Frames)
	}
}

func TestTrimIsIdempotentOnItsOutput(t *testing.T) {
	s := testSession(t)
	first := editor.Trim(s, 1000, 9000)
	second := editor.Trim(first, 0, 8000)
	if !reflect.DeepEqual(first.Frames, second.Frames) {
		t.Fatalf("expected idempotent trim:\nfirst %#v\nsecond %#v", first.Frames, second.Frames)
	}
}

func TestResizeAndTrimCommute(t *testing.T) {
	s := testSession(t)
	a := editor.Trim(editor.Resize(s, "120", "40"), 1000, 4000)
	b := editor.Resize(editor.Trim(s, 1000, 4000), "120", "40")

	if !reflect.DeepEqual(a.Frames, b.Frames) {
		t.Fatal("frames differ across edit order")
	}
	if *a.Dimensions != *b.Dimensions {
		t.Fatal("dimensions differ across edit order")
	}
	if !a.StartTime.Equal(b.StartTime) {
		t.Fatal("start time differs across edit order")
	}
}
