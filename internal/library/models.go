package library

import "time"

// Entry is one catalog row: a recorded session on disk plus the metadata the
// CLI lists and filters by.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
	DurationMS int64     `json:"durationMs"`
	FrameCount int       `json:"frameCount"`
	Shell      string    `json:"shell"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}

// Duration returns the recording length as a time.Duration.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationMS) * time.Millisecond
}
