package capture

import (
	"sort"
	"strings"

	"trec/internal/session"
)

// artifactSequences are control sequences a terminal emits while the user
// corrects a line: the raw backspace and delete bytes, cursor-left, and
// erase-to-end-of-line. The clean keystroke record already reflects the
// corrected text, so these must not leak into stored output.
var artifactSequences = []string{
	"\x1b[D", // cursor left
	"\x1b[K", // erase to end of line
	"\b",
	"\x7f",
}

func stripArtifacts(data string) string {
	for _, seq := range artifactSequences {
		data = strings.ReplaceAll(data, seq, "")
	}
	return data
}

// Finalize converts a raw capture stream into a clean session. It is total:
// malformed streams degrade to defensive no-ops, never errors.
//
// Keystrokes become input frames and are tracked on a pending stack; a
// deletion pops the most recent uncorrected keystroke and removes its frame
// from the result. A deletion with nothing pending is ignored, since capture
// sources occasionally over-report corrections. Output frames are copied with
// correction artifacts stripped; frames reduced to nothing are dropped. The
// result is re-sorted stably by timestamp to repair ordering violations a
// concurrent capture source may have introduced.
func Finalize(events []Event, meta Metadata) session.Session {
	out := session.New(meta.StartTime, meta.TerminalInfo)
	if meta.Dimensions != nil {
		dims := session.NormalizeDimensions(meta.Dimensions.Width, meta.Dimensions.Height)
		out.Dimensions = &dims
	}

	frames := make([]session.Frame, 0, len(events))
	pending := make([]int, 0, 8)

	for _, ev := range events {
		switch ev.Kind {
		case EventKeystroke:
			frames = append(frames, session.Frame{
				Timestamp: clampTime(ev.Time),
				Content:   ev.Data,
				Kind:      session.KindInput,
			})
			pending = append(pending, len(frames)-1)
		case EventOutput:
			cleaned := stripArtifacts(ev.Data)
			if cleaned == "" {
				continue
			}
			frames = append(frames, session.Frame{
				Timestamp: clampTime(ev.Time),
				Content:   cleaned,
				Kind:      session.KindOutput,
			})
		case EventDeletion:
			if len(pending) == 0 {
				continue
			}
			idx := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			frames = append(frames[:idx], frames[idx+1:]...)
		case EventFlush:
			wall := ev.Wall
			if !wall.IsZero() {
				out.EndTime = &wall
			}
		}
		if ev.Kind == EventFlush {
			break
		}
	}

	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Timestamp < frames[j].Timestamp
	})
	out.Frames = frames
	return out
}

func clampTime(timeMS int64) int64 {
	if timeMS < 0 {
		return 0
	}
	return timeMS
}
