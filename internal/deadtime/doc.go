// Package deadtime shortens long inactivity gaps between frames without
// disturbing the relative rhythm of the activity around them.
//
// Compression is a playback-only transform: the stored recording is never
// mutated, and callers either discard the compressed copy after use or
// persist it separately as an export. Gaps above the threshold shrink to the
// cap; everything else keeps its original spacing.
package deadtime
