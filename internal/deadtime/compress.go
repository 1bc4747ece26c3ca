package deadtime

import (
	"time"

	"trec/internal/session"
)

// Engine defaults, used when an Options field is unset. Runtime overrides
// come from the [deadtime] config section.
const (
	DefaultThresholdMS int64 = 3000
	DefaultCapMS       int64 = 1000
)

// Options parameterizes compression. A gap longer than Threshold milliseconds
// is shrunk to Cap milliseconds.
type Options struct {
	ThresholdMS int64
	CapMS       int64
}

func (o Options) withDefaults() Options {
	if o.ThresholdMS <= 0 {
		o.ThresholdMS = DefaultThresholdMS
	}
	if o.CapMS <= 0 {
		o.CapMS = DefaultCapMS
	}
	return o
}

// Compress returns a copy of s with dead time removed. Every frame keeps its
// position relative to its neighbors; only the stretches above the threshold
// shrink, and the reduction is cumulative across multiple gaps. Sessions with
// fewer than two frames have no gaps to measure and come back unchanged.
func Compress(s session.Session, opts Options) session.Session {
	out := s.Clone()
	if len(out.Frames) < 2 {
		return out
	}
	opts = opts.withDefaults()

	var reduction int64
	frames := out.Frames
	for i := range frames {
		original := frames[i].Timestamp
		frames[i].Timestamp = original - reduction
		if i+1 < len(frames) {
			gap := frames[i+1].Timestamp - original
			if gap > opts.ThresholdMS {
				reduction += gap - opts.CapMS
			}
		}
	}

	// Keep the wall-clock anchors consistent with the shortened timeline so
	// an exported compressed session reports the right duration.
	if out.EndTime != nil && reduction > 0 {
		end := out.EndTime.Add(-time.Duration(reduction) * time.Millisecond)
		out.EndTime = &end
	}
	return out
}
