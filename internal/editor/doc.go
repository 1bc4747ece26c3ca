// Package editor provides the bounded, declarative timeline edits: resizing
// the recorded terminal grid and trimming a recording to a time sub-range.
//
// Every edit takes a session by value and returns a new one; the input is
// never mutated. Resize and Trim touch disjoint fields, so they compose in
// either order.
package editor
