package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"trec/internal/session"
)

// consoleRenderer replays frames straight to a writer. On a real terminal it
// clears the screen on rebuilds so seeks look like a fresh replay; when the
// output is piped it just appends, which keeps captures clean.
type consoleRenderer struct {
	out   io.Writer
	isTTY bool
}

func newConsoleRenderer(out io.Writer) *consoleRenderer {
	r := &consoleRenderer{out: out}
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		r.isTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return r
}

func (r *consoleRenderer) Emit(content string, kind session.FrameKind) {
	io.WriteString(r.out, content)
}

func (r *consoleRenderer) Rebuild(accumulated string) {
	r.Clear()
	io.WriteString(r.out, accumulated)
}

func (r *consoleRenderer) Clear() {
	if r.isTTY {
		fmt.Fprint(r.out, "\x1b[2J\x1b[H")
		return
	}
	fmt.Fprintln(r.out)
}
