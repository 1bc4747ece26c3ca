package session

import "time"

// FormatVersion is the document format version this engine writes. Only the
// major component gates compatibility on load.
const FormatVersion = "1.0.0"

// FileExtension is the conventional extension for persisted recordings.
const FileExtension = ".trec"

// DefaultDimensions is the terminal grid assumed when a recording carries no
// dimension metadata.
var DefaultDimensions = Dimensions{Width: 80, Height: 24}

const (
	minWidth  = 20
	minHeight = 5
)

// Dimensions is the character grid size of the recorded terminal.
type Dimensions struct {
	Width  int
	Height int
}

// NormalizeDimensions validates a requested grid size. Values below the
// supported minimum fall back to DefaultDimensions rather than erroring; a
// recording with an implausible grid is still playable at the default size.
func NormalizeDimensions(width, height int) Dimensions {
	if width < minWidth || height < minHeight {
		return DefaultDimensions
	}
	return Dimensions{Width: width, Height: height}
}

// TerminalInfo is descriptive metadata about the recorded shell. The engine
// passes it through untouched; timing logic never reads it.
type TerminalInfo struct {
	Shell      string
	WorkingDir string
	ShellPath  string
}

// Session is a full ordered recording: frames plus metadata, treated as one
// persistable value. Frames are ordered by non-decreasing timestamp once a
// session is finalized.
type Session struct {
	FormatVersion string
	StartTime     time.Time
	EndTime       *time.Time
	TerminalInfo  TerminalInfo
	Dimensions    *Dimensions
	Frames        []Frame
}

// New returns an empty session anchored at the given wall-clock start.
func New(start time.Time, info TerminalInfo) Session {
	return Session{
		FormatVersion: FormatVersion,
		StartTime:     start,
		TerminalInfo:  info,
	}
}

// Duration reports the recording length: EndTime-StartTime when both anchors
// are present, otherwise the last frame's offset, otherwise zero.
func (s Session) Duration() time.Duration {
	if s.EndTime != nil && !s.StartTime.IsZero() {
		return s.EndTime.Sub(s.StartTime)
	}
	if n := len(s.Frames); n > 0 {
		return time.Duration(s.Frames[n-1].Timestamp) * time.Millisecond
	}
	return 0
}

// EffectiveDimensions resolves the grid size playback should assume,
// falling back to DefaultDimensions when metadata is absent or out of range.
func (s Session) EffectiveDimensions() Dimensions {
	if s.Dimensions == nil {
		return DefaultDimensions
	}
	return NormalizeDimensions(s.Dimensions.Width, s.Dimensions.Height)
}

// Clone returns a deep copy. Editor transforms clone before touching
// anything so the input session stays intact.
func (s Session) Clone() Session {
	out := s
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	if s.Dimensions != nil {
		dims := *s.Dimensions
		out.Dimensions = &dims
	}
	if s.Frames != nil {
		out.Frames = make([]Frame, len(s.Frames))
		copy(out.Frames, s.Frames)
	}
	return out
}
