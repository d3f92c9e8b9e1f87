package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMalformed is returned when the log file is not a JSON array of snapshots.
var ErrMalformed = errors.New("history log malformed")

// Counts tallies the signals attributed to one theme in a snapshot.
type Counts struct {
	Total    int `json:"total"`
	Largecap int `json:"largecap"`
	Midcap   int `json:"midcap"`
}

// Snapshot is one run's theme counts for the current week.
type Snapshot struct {
	Week   string            `json:"week"`
	Themes map[string]Counts `json:"themes"`
}

// MarshalJSON writes an empty themes object rather than null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type snapshot Snapshot
	if s.Themes == nil {
		s.Themes = map[string]Counts{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snapshot(s)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Log is the append-only sequence of snapshots, persisted as a single JSON array.
// Every append reads the whole file and rewrites it; concurrent writers are not
// coordinated and the last write wins.
type Log struct {
	Path string
}

// Open returns the log stored at path. The file is not touched until used.
func Open(path string) *Log {
	return &Log{Path: path}
}

// Read returns every snapshot in the log. A missing file is an empty log.
func (l *Log) Read() ([]Snapshot, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Snapshot{}, nil
	}

	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, l.Path, err)
	}
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	for i := range snapshots {
		if snapshots[i].Themes == nil {
			snapshots[i].Themes = map[string]Counts{}
		}
	}
	return snapshots, nil
}

// Write replaces the log with snapshots.
func (l *Log) Write(snapshots []Snapshot) error {
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return l.write(snapshots)
}

// Append adds s after every existing snapshot and returns the new log length.
// Existing entries are carried over as raw JSON, so fields this package does
// not know about survive; entries are never deduplicated by week.
func (l *Log) Append(s Snapshot) (int, error) {
	entries, err := l.readRaw()
	if err != nil {
		return 0, err
	}
	next, err := s.MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}
	entries = append(entries, next)
	if err := l.write(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// readRaw returns the log's entries undecoded. A missing or blank file is an
// empty log, as is a top-level null; any other non-array is ErrMalformed.
func (l *Log) readRaw() ([]json.RawMessage, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, l.Path, err)
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}
	return entries, nil
}

func (l *Log) write(v any) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(l.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Stats summarises the log for the stats command.
type Stats struct {
	Snapshots  int
	Size       int64
	FirstWeek  string
	LatestWeek string
}

// Stat reports the log's size and week range. A missing file gives zero Stats.
func (l *Log) Stat() (Stats, error) {
	var st Stats
	info, err := os.Stat(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("stat history: %w", err)
	}
	st.Size = info.Size()

	snapshots, err := l.Read()
	if err != nil {
		return st, err
	}
	st.Snapshots = len(snapshots)
	if len(snapshots) > 0 {
		st.FirstWeek = snapshots[0].Week
		st.LatestWeek = snapshots[len(snapshots)-1].Week
	}
	return st, nil
}
