package signal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

var (
	ErrSourceAbsent    = errors.New("signal source absent")
	ErrSourceMalformed = errors.New("signal source malformed")
)

// Source is one configured signal file.
type Source struct {
	Name string
	Path string
}

// SourceErrorKind distinguishes a missing file from one that could not be parsed.
type SourceErrorKind string

const (
	KindAbsent    SourceErrorKind = "absent"
	KindMalformed SourceErrorKind = "malformed"
)

// SourceError describes why a source contributed no signals.
type SourceError struct {
	Source Source
	Kind   SourceErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s (%s): %s: %v", e.Source.Name, e.Source.Path, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *SourceError) Is(target error) bool {
	switch target {
	case ErrSourceAbsent:
		return e.Kind == KindAbsent
	case ErrSourceMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// Load reads every record from a single source file. The file must hold a
// JSON array; individual records are decoded leniently.
func Load(src Source) ([]Record, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceError{Source: src, Kind: KindAbsent, Err: err}
		}
		return nil, &SourceError{Source: src, Kind: KindMalformed, Err: err}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &SourceError{Source: src, Kind: KindMalformed, Err: errors.New("expected a JSON array of records")}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &SourceError{Source: src, Kind: KindMalformed, Err: err}
	}
	records := make([]Record, 0, len(elems))
	for _, raw := range elems {
		if r, ok := decodeRecord(raw); ok {
			records = append(records, r)
		}
	}
	return records, nil
}

// decodeRecord decodes one array element. Elements that are not objects are
// dropped; a field holding the wrong JSON type is left at its zero value so
// the rest of the record still counts.
func decodeRecord(raw json.RawMessage) (Record, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Record{}, false
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err == nil {
		return r, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Record{}, false
	}
	r = Record{}
	field(fields, "captured_at", &r.CapturedAt)
	field(fields, "segment", &r.Segment)
	field(fields, "source_channel", &r.SourceChannel)
	field(fields, "source_type", &r.SourceType)
	field(fields, "geo_primary", &r.GeoPrimary)
	field(fields, "india_relevance", &r.IndiaRelevance)
	field(fields, "org_name", &r.OrgName)
	field(fields, "industry", &r.Industry)
	field(fields, "role_or_skill_hint", &r.RoleOrSkillHint)
	field(fields, "title", &r.Title)
	field(fields, "snippet", &r.Snippet)
	field(fields, "link", &r.Link)
	field(fields, "evidence_weight", &r.EvidenceWeight)
	field(fields, "notes", &r.Notes)
	field(fields, "skill_hits", &r.SkillHits)
	field(fields, "ai_related", &r.AIRelated)
	return r, true
}

// field sets dst only when key is present and decodes cleanly.
func field[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// SourceStatus records how many signals a source contributed.
type SourceStatus struct {
	Source  Source
	Records int
}

type LoadResult struct {
	Signals []Record
	Loaded  []SourceStatus
	Skipped []*SourceError
}

// Err combines the errors of every skipped source, or returns nil.
func (r LoadResult) Err() error {
	var err error
	for _, s := range r.Skipped {
		err = multierr.Append(err, s)
	}
	return err
}

// LoadAll reads sources in order. Absent or malformed sources contribute zero
// signals and are reported in Skipped; loading never aborts.
func LoadAll(sources []Source) LoadResult {
	var result LoadResult
	for _, src := range sources {
		records, err := Load(src)
		if err != nil {
			var serr *SourceError
			if !errors.As(err, &serr) {
				serr = &SourceError{Source: src, Kind: KindMalformed, Err: err}
			}
			result.Skipped = append(result.Skipped, serr)
			continue
		}
		result.Signals = append(result.Signals, records...)
		result.Loaded = append(result.Loaded, SourceStatus{Source: src, Records: len(records)})
	}
	return result
}
