package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

type frameDoc struct {
	Timestamp int64  `json:"timestamp"`
	Content   string `json:"content"`
	Type      string `json:"type"`
}

type dimensionsDoc struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type terminalInfoDoc struct {
	Shell      string `json:"shell,omitempty"`
	WorkingDir string `json:"workingDir,omitempty"`
	ShellPath  string `json:"shellPath,omitempty"`
}

type sessionDoc struct {
	FormatVersion string          `json:"formatVersion"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       *time.Time      `json:"endTime,omitempty"`
	Frames        []frameDoc      `json:"frames"`
	TerminalInfo  terminalInfoDoc `json:"terminalInfo"`
	Dimensions    *dimensionsDoc  `json:"dimensions,omitempty"`
}

// Encode writes the session document to w.
func Encode(w io.Writer, s Session) error {
	doc := sessionDoc{
		FormatVersion: s.FormatVersion,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Frames:        make([]frameDoc, 0, len(s.Frames)),
		TerminalInfo: terminalInfoDoc{
			Shell:      s.TerminalInfo.Shell,
			WorkingDir: s.TerminalInfo.WorkingDir,
			ShellPath:  s.TerminalInfo.ShellPath,
		},
	}
	if doc.FormatVersion == "" {
		doc.FormatVersion = FormatVersion
	}
	if s.Dimensions != nil {
		doc.Dimensions = &dimensionsDoc{Width: s.Dimensions.Width, Height: s.Dimensions.Height}
	}
	for _, frame := range s.Frames {
		doc.Frames = append(doc.Frames, frameDoc{
			Timestamp: frame.Timestamp,
			Content:   frame.Content,
			Type:      frame.Kind.String(),
		})
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return nil
}

// Decode parses and validates a session document. It fails with
// ErrIncompatibleFormat on a major version mismatch and with
// MalformedDocumentError on structural problems; no partial session is
// returned in either case.
func Decode(r io.Reader) (Session, error) {
	var doc sessionDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Session{}, malformed("document", err)
	}

	version := strings.TrimSpace(doc.FormatVersion)
	if version == "" {
		return Session{}, malformedf("formatVersion", "missing required field")
	}
	major, err := majorVersion(version)
	if err != nil {
		return Session{}, malformed("formatVersion", err)
	}
	supported, err := majorVersion(FormatVersion)
	if err != nil {
		return Session{}, malformed("formatVersion", err)
	}
	if major != supported {
		return Session{}, fmt.Errorf("%w: document version %s, engine supports major %d",
			ErrIncompatibleFormat, version, supported)
	}

	if doc.StartTime.IsZero() {
		return Session{}, malformedf("startTime", "missing required field")
	}
	if doc.Frames == nil {
		return Session{}, malformedf("frames", "missing required field")
	}

	out := Session{
		FormatVersion: version,
		StartTime:     doc.StartTime,
		EndTime:       doc.EndTime,
		TerminalInfo: TerminalInfo{
			Shell:      doc.TerminalInfo.Shell,
			WorkingDir: doc.TerminalInfo.WorkingDir,
			ShellPath:  doc.TerminalInfo.ShellPath,
		},
		Frames: make([]Frame, 0, len(doc.Frames)),
	}
	if doc.Dimensions != nil {
		dims := Dimensions{Width: doc.Dimensions.Width, Height: doc.Dimensions.Height}
		out.Dimensions = &dims
	}
	for i, frame := range doc.Frames {
		kind, ok := ParseFrameKind(frame.Type)
		if !ok {
			return Session{}, malformedf(fmt.Sprintf("frames[%d].type", i), "unknown frame type %q", frame.Type)
		}
		if frame.Timestamp < 0 {
			return Session{}, malformedf(fmt.Sprintf("frames[%d].timestamp", i), "negative timestamp %d", frame.Timestamp)
		}
		out.Frames = append(out.Frames, Frame{
			Timestamp: frame.Timestamp,
			Content:   frame.Content,
			Kind:      kind,
		})
	}
	return out, nil
}

// Save writes the session document to path.
func Save(path string, s Session) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	if err := Encode(file, s); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	return nil
}

// Load reads and validates the session document at path.
func Load(path string) (Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return Session{}, fmt.Errorf("open session file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

func majorVersion(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("parse major version from %q: %w", version, err)
	}
	if major < 0 {
		return 0, errors.New("negative major version")
	}
	return major, nil
}
