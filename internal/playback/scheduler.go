package playback

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"trec/internal/deadtime"
	"trec/internal/logging"
	"trec/internal/session"
)

// State is the scheduler's position in its lifecycle.
type State int

const (
	// Idle: cursor at frame zero, nothing emitted.
	Idle State = iota
	// Playing: the scheduler is advancing through frames.
	Playing
	// Paused: cursor retained, no emission until resumed.
	Paused
	// Finished: the cursor passed the last frame. Terminal, not an error.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// DefaultMinDelay floors the computed inter-frame delay so near-simultaneous
// frames cannot cause a zero-delay emission storm.
const DefaultMinDelay = 50 * time.Millisecond

// Options configures a Scheduler.
type Options struct {
	// Speed is the playback-rate multiplier; 1.0 is real time.
	Speed float64
	// MinDelay floors the inter-frame delay. Defaults to DefaultMinDelay.
	MinDelay time.Duration
	// DeadTime parameterizes the compressed frame list used when dead-time
	// compression is toggled on.
	DeadTime deadtime.Options
	Logger   *slog.Logger
}

// Scheduler replays one session against a Renderer. All methods are safe for
// concurrent use; the emission loop itself is a single goroutine that
// suspends between frames and re-checks its controls at every suspension
// point.
type Scheduler struct {
	mu       sync.Mutex
	renderer Renderer
	logger   *slog.Logger

	source     session.Session
	compressed *session.Session
	frames     []session.Frame
	compressOn bool
	dtOpts     deadtime.Options

	state    State
	cursor   int
	speed    float64
	minDelay time.Duration
	acc      strings.Builder

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a scheduler over a private copy of the session.
func New(s session.Session, renderer Renderer, opts Options) *Scheduler {
	speed := opts.Speed
	if speed <= 0 {
		speed = 1.0
	}
	minDelay := opts.MinDelay
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	source := s.Clone()
	return &Scheduler{
		renderer: renderer,
		logger:   logger,
		source:   source,
		frames:   source.Frames,
		dtOpts:   opts.DeadTime,
		state:    Idle,
		speed:    speed,
		minDelay: minDelay,
		wake:     make(chan struct{}, 1),
	}
}

// Play starts or resumes emission. It is a no-op while already playing and
// after Finished (Reset first). Cancelling ctx halts the loop at its next
// suspension point, leaving the scheduler paused at the current cursor.
func (s *Scheduler) Play(ctx context.Context) {
	s.mu.Lock()
	if s.state == Playing || s.state == Finished {
		s.mu.Unlock()
		return
	}
	s.state = Playing
	if s.cancel != nil {
		// A previous run goroutine may still be exiting. It can steal at most
		// one wake signal on the way out; its cancelled ctx fails the emission
		// guard, so it never emits or moves the cursor, and the new goroutine
		// re-reads all controls at the top of its loop.
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done
	s.logger.Debug("playback starting", "cursor", s.cursor, "frames", len(s.frames), "speed", s.speed)
	s.mu.Unlock()

	go s.run(runCtx, done)
}

// Pause suspends emission, keeping the cursor.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	if s.state == Playing {
		s.state = Paused
		s.signalLocked()
		s.logger.Debug("playback paused", "cursor", s.cursor)
	}
	s.mu.Unlock()
}

// Reset returns the scheduler to Idle from any state, clearing the renderer
// and the accumulated content.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = Idle
	s.cursor = 0
	s.acc.Reset()
	s.signalLocked()
	renderer := s.renderer
	s.mu.Unlock()

	renderer.Clear()
}

// Seek jumps to a fraction of the timeline (clamped to [0, 1]).
func (s *Scheduler) Seek(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	s.mu.Lock()
	var target int64
	if n := len(s.frames); n > 0 {
		target = int64(fraction * float64(s.frames[n-1].Timestamp))
	}
	s.seekLocked(target)
}

// SeekTo jumps to an absolute session-relative time in milliseconds. Seeking
// past the end clamps to Finished.
func (s *Scheduler) SeekTo(targetMS int64) {
	s.mu.Lock()
	s.seekLocked(targetMS)
}

// seekLocked repositions the cursor and rebuilds the accumulator from frame
// zero; content is cumulative, so a backward seek cannot reuse the existing
// accumulator. Releases s.mu.
func (s *Scheduler) seekLocked(targetMS int64) {
	frames := s.frames
	// A zero seek is a full rewind even when a frame sits at timestamp 0;
	// positive targets include frames stamped exactly targetMS.
	idx := 0
	if targetMS > 0 {
		idx = sort.Search(len(frames), func(i int) bool {
			return frames[i].Timestamp > targetMS
		})
	}
	s.cursor = idx
	s.acc.Reset()
	for _, frame := range frames[:idx] {
		s.acc.WriteString(frame.Content)
	}

	switch {
	case idx >= len(frames):
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.state = Finished
	case s.state == Playing:
		// keep playing from the new cursor
	case s.state == Idle && idx == 0:
		// a zero seek from Idle stays Idle
	default:
		s.state = Paused
	}
	s.signalLocked()
	accumulated := s.acc.String()
	renderer := s.renderer
	s.logger.Debug("playback seek", "targetMs", targetMS, "cursor", idx, "state", s.state.String())
	s.mu.Unlock()

	renderer.Rebuild(accumulated)
}

// SetSpeed changes the playback-rate multiplier. Non-positive values are
// ignored.
func (s *Scheduler) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	s.mu.Lock()
	s.speed = speed
	s.signalLocked()
	s.mu.Unlock()
}

// SetDeadTimeCompression swaps between the original and the dead-time
// compressed frame list and resets playback to Idle: frame indices are not
// comparable across the two timelines. The compressed list is derived lazily
// and cached; the source session is never touched.
func (s *Scheduler) SetDeadTimeCompression(enabled bool) {
	s.mu.Lock()
	if enabled == s.compressOn {
		s.mu.Unlock()
		return
	}
	s.compressOn = enabled
	if enabled {
		if s.compressed == nil {
			c := deadtime.Compress(s.source, s.dtOpts)
			s.compressed = &c
		}
		s.frames = s.compressed.Frames
	} else {
		s.frames = s.source.Frames
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = Idle
	s.cursor = 0
	s.acc.Reset()
	s.signalLocked()
	renderer := s.renderer
	s.mu.Unlock()

	renderer.Clear()
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position reports the cursor and the active frame count.
func (s *Scheduler) Position() (cursor, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.frames)
}

// Accumulated returns the concatenated content of every emitted frame.
func (s *Scheduler) Accumulated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc.String()
}

// Speed reports the current playback-rate multiplier.
func (s *Scheduler) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// DeadTimeCompression reports whether the compressed timeline is active.
func (s *Scheduler) DeadTimeCompression() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compressOn
}

// Done returns a channel closed when the current emission loop exits, whether
// by finishing, pausing, or cancellation. Before the first Play it is already
// closed.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

func (s *Scheduler) signalLocked() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		s.mu.Lock()
		if ctx.Err() != nil {
			if s.state == Playing {
				s.state = Paused
			}
			s.mu.Unlock()
			return
		}
		if s.state != Playing {
			s.mu.Unlock()
			return
		}
		if s.cursor >= len(s.frames) {
			s.state = Finished
			s.logger.Debug("playback finished", "frames", len(s.frames))
			s.mu.Unlock()
			return
		}
		idx := s.cursor
		frame := s.frames[idx]
		delay := s.delayBeforeLocked(idx)
		s.mu.Unlock()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				continue
			case <-s.wake:
				// A control changed under us; recompute before emitting.
				timer.Stop()
				continue
			case <-timer.C:
			}
		}

		s.mu.Lock()
		if ctx.Err() != nil || s.state != Playing || s.cursor != idx {
			s.mu.Unlock()
			continue
		}
		s.cursor++
		s.acc.WriteString(frame.Content)
		renderer := s.renderer
		s.mu.Unlock()

		renderer.Emit(frame.Content, frame.Kind)
	}
}

// delayBeforeLocked computes the suspension before emitting frame idx:
// max(minDelay, gap to the previous frame) divided by the speed multiplier.
// The first frame emits immediately.
func (s *Scheduler) delayBeforeLocked(idx int) time.Duration {
	if idx == 0 {
		return 0
	}
	gap := time.Duration(s.frames[idx].Timestamp-s.frames[idx-1].Timestamp) * time.Millisecond
	if gap < s.minDelay {
		gap = s.minDelay
	}
	return time.Duration(float64(gap) / s.speed)
}
