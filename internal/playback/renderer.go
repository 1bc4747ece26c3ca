package playback

import "trec/internal/session"

// Renderer receives the replayed content. Implementations live outside the
// engine (a terminal writer, an HTML view); the scheduler only drives the
// interface.
type Renderer interface {
	// Emit delivers one frame's content during timed playback.
	Emit(content string, kind session.FrameKind)
	// Rebuild replaces the renderer's view with the accumulated content after
	// a seek, instead of re-emitting frame by frame.
	Rebuild(accumulated string)
	// Clear empties the renderer's view on reset.
	Clear()
}
