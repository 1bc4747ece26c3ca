package capture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"trec/internal/session"
)

// The journal is JSON lines: a header describing the recording, then one
// event per line. It is the hand-off format between an external capture
// source and this engine; nothing in here interprets the events.

type journalHeader struct {
	StartTime  time.Time `json:"startTime"`
	Shell      string    `json:"shell,omitempty"`
	WorkingDir string    `json:"workingDir,omitempty"`
	ShellPath  string    `json:"shellPath,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
}

type journalEvent struct {
	Time int64      `json:"time"`
	Kind string     `json:"kind"`
	Data string     `json:"data,omitempty"`
	Wall *time.Time `json:"wall,omitempty"`
}

// WriteLog writes a raw capture journal to w.
func WriteLog(w io.Writer, meta Metadata, events []Event) error {
	enc := json.NewEncoder(w)
	header := journalHeader{
		StartTime:  meta.StartTime,
		Shell:      meta.TerminalInfo.Shell,
		WorkingDir: meta.TerminalInfo.WorkingDir,
		ShellPath:  meta.TerminalInfo.ShellPath,
	}
	if meta.Dimensions != nil {
		header.Width = meta.Dimensions.Width
		header.Height = meta.Dimensions.Height
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("encode journal header: %w", err)
	}
	for i, ev := range events {
		line := journalEvent{Time: ev.Time, Kind: ev.Kind.String(), Data: ev.Data}
		if ev.Kind == EventFlush && !ev.Wall.IsZero() {
			wall := ev.Wall
			line.Wall = &wall
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("encode journal event %d: %w", i, err)
		}
	}
	return nil
}

// ReadLog parses a raw capture journal from r.
func ReadLog(r io.Reader) (Metadata, []Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var meta Metadata
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Metadata{}, nil, fmt.Errorf("read journal header: %w", err)
		}
		return Metadata{}, nil, fmt.Errorf("read journal header: empty journal")
	}
	var header journalHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return Metadata{}, nil, fmt.Errorf("parse journal header: %w", err)
	}
	meta.StartTime = header.StartTime
	meta.TerminalInfo = session.TerminalInfo{
		Shell:      header.Shell,
		WorkingDir: header.WorkingDir,
		ShellPath:  header.ShellPath,
	}
	if header.Width != 0 || header.Height != 0 {
		dims := session.Dimensions{Width: header.Width, Height: header.Height}
		meta.Dimensions = &dims
	}

	var events []Event
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var line journalEvent
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return Metadata{}, nil, fmt.Errorf("parse journal line %d: %w", lineNo, err)
		}
		kind, err := parseEventKind(line.Kind)
		if err != nil {
			return Metadata{}, nil, fmt.Errorf("parse journal line %d: %w", lineNo, err)
		}
		ev := Event{Time: line.Time, Kind: kind, Data: line.Data}
		if line.Wall != nil {
			ev.Wall = *line.Wall
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return Metadata{}, nil, fmt.Errorf("read journal: %w", err)
	}
	return meta, events, nil
}

// ReadLogFile reads a raw capture journal from disk.
func ReadLogFile(path string) (Metadata, []Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("open capture journal: %w", err)
	}
	defer file.Close()
	return ReadLog(file)
}
