package session

// FrameKind distinguishes who produced a frame's content.
type FrameKind int

const (
	// KindInput is user-originated keystroke data.
	KindInput FrameKind = iota
	// KindOutput is shell-originated data, escape sequences included.
	KindOutput
)

// String returns the wire name of the kind as used in the document format.
func (k FrameKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// ParseFrameKind maps a document type string back to a FrameKind.
func ParseFrameKind(value string) (FrameKind, bool) {
	switch value {
	case "input":
		return KindInput, true
	case "output":
		return KindOutput, true
	default:
		return 0, false
	}
}

// Frame is one timestamped input or output event in a recording. Timestamp is
// a millisecond offset from session start. Content is opaque: control bytes
// and escape sequences pass through untouched.
type Frame struct {
	Timestamp int64
	Content   string
	Kind      FrameKind
}
