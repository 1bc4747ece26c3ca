package editor

import (
	"strconv"
	"time"

	"trec/internal/session"
)

// Unbounded marks a trim range with no upper limit.
const Unbounded int64 = -1

// Resize returns a copy of s with the requested terminal dimensions. The
// width and height arrive as user-supplied strings; non-numeric or
// out-of-range values fall back to the default grid. Resize never rejects
// input.
func Resize(s session.Session, width, height string) session.Session {
	out := s.Clone()
	dims := parseDimensions(width, height)
	out.Dimensions = &dims
	return out
}

func parseDimensions(width, height string) session.Dimensions {
	w, errW := strconv.Atoi(width)
	h, errH := strconv.Atoi(height)
	if errW != nil || errH != nil {
		return session.DefaultDimensions
	}
	return session.NormalizeDimensions(w, h)
}

// Trim returns a copy of s restricted to frames with
// startMs <= timestamp <= endMs, re-based so the first retained frame sits at
// zero. Pass Unbounded (or any negative endMs) for an open upper limit.
//
// The wall-clock anchors move with the cut: StartTime shifts forward by
// startMs, and EndTime is clamped to StartTime+endMs when both are bounded.
// A range that retains nothing yields a zero-frame session, not an error.
func Trim(s session.Session, startMs, endMs int64) session.Session {
	out := s.Clone()
	if startMs < 0 {
		startMs = 0
	}
	unbounded := endMs < 0

	retained := make([]session.Frame, 0, len(out.Frames))
	for _, frame := range out.Frames {
		if frame.Timestamp < startMs {
			continue
		}
		if !unbounded && frame.Timestamp > endMs {
			continue
		}
		retained = append(retained, frame)
	}

	if len(retained) > 0 {
		base := retained[0].Timestamp
		for i := range retained {
			retained[i].Timestamp -= base
		}
	}
	out.Frames = retained

	// endMs is session-relative, so the wall-clock limit anchors on the
	// original start, before it shifts.
	if out.EndTime != nil && !unbounded {
		limit := out.StartTime.Add(time.Duration(endMs) * time.Millisecond)
		if out.EndTime.After(limit) {
			out.EndTime = &limit
		}
	}
	if !out.StartTime.IsZero() {
		out.StartTime = out.StartTime.Add(time.Duration(startMs) * time.Millisecond)
	}
	return out
}
