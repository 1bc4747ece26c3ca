// Package capture turns raw keystroke/output event streams into clean,
// finalized sessions.
//
// A capture source records every keystroke as it happens, deletions included,
// which preserves authentic typing rhythm for later playback. The cost is
// that the raw stream carries correction artifacts: deletion events for
// retracted keystrokes and terminal-driven backspace/erase noise embedded in
// output. Finalize removes both at the end of a recording, so "what was
// captured" and "what should be replayed" stay separate concerns.
//
// The package also reads and writes the JSON-lines journal format an external
// capture source uses to hand a finished raw stream to the engine.
package capture
