package capture

import (
	"fmt"
	"time"

	"trec/internal/session"
)

// EventKind is the closed set of raw capture event variants.
type EventKind int

const (
	// EventKeystroke is one unit of user input.
	EventKeystroke EventKind = iota
	// EventOutput is shell output, control noise included.
	EventOutput
	// EventDeletion retracts the most recent uncorrected keystroke. It never
	// survives finalization.
	EventDeletion
	// EventFlush closes the stream and carries the recording's wall-clock end
	// time. Events after a flush are ignored.
	EventFlush
)

func (k EventKind) String() string {
	switch k {
	case EventKeystroke:
		return "keystroke"
	case EventOutput:
		return "output"
	case EventDeletion:
		return "deletion"
	case EventFlush:
		return "flush"
	default:
		return "unknown"
	}
}

func parseEventKind(value string) (EventKind, error) {
	switch value {
	case "keystroke":
		return EventKeystroke, nil
	case "output":
		return EventOutput, nil
	case "deletion":
		return EventDeletion, nil
	case "flush":
		return EventFlush, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", value)
	}
}

// Event is one raw capture event. Time is a millisecond offset from the
// session start. Data is set for keystrokes and output; Wall is set on flush.
type Event struct {
	Time int64
	Kind EventKind
	Data string
	Wall time.Time
}

// Keystroke builds a keystroke event.
func Keystroke(timeMS int64, data string) Event {
	return Event{Time: timeMS, Kind: EventKeystroke, Data: data}
}

// Output builds an output event.
func Output(timeMS int64, data string) Event {
	return Event{Time: timeMS, Kind: EventOutput, Data: data}
}

// Deletion builds a deletion event.
func Deletion(timeMS int64) Event {
	return Event{Time: timeMS, Kind: EventDeletion}
}

// Flush builds the stream-closing event with the recording's end time.
func Flush(timeMS int64, wall time.Time) Event {
	return Event{Time: timeMS, Kind: EventFlush, Wall: wall}
}

// Metadata describes the recording a raw stream belongs to.
type Metadata struct {
	StartTime    time.Time
	TerminalInfo session.TerminalInfo
	Dimensions   *session.Dimensions
}
