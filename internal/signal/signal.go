package signal

import (
	"strings"
	"time"
)

// Segment is the coarse organization-size bucket attached to job-posting signals.
type Segment string

const (
	Largecap Segment = "largecap"
	Midcap   Segment = "midcap"
)

// Record is a single captured signal as written by the fetchers.
type Record struct {
	CapturedAt      string   `json:"captured_at"`
	Segment         string   `json:"segment,omitempty"`
	SourceChannel   string   `json:"source_channel"`
	SourceType      string   `json:"source_type"`
	GeoPrimary      string   `json:"geo_primary"`
	IndiaRelevance  string   `json:"india_relevance"`
	OrgName         string   `json:"org_name"`
	Industry        string   `json:"industry"`
	RoleOrSkillHint string   `json:"role_or_skill_hint"`
	Title           string   `json:"title"`
	Snippet         string   `json:"snippet"`
	Link            string   `json:"link"`
	EvidenceWeight  int      `json:"evidence_weight"`
	Notes           string   `json:"notes"`
	SkillHits       []string `json:"skill_hits,omitempty"`
	AIRelated       *bool    `json:"ai_related,omitempty"`
}

// Text returns the blob used for theme classification.
func (r Record) Text() string {
	return r.Title + " " + r.Snippet
}

// HasSegment reports whether the record belongs to seg. Only exact matches count.
func (r Record) HasSegment(seg Segment) bool {
	return r.Segment == string(seg)
}

// IsAIRelated returns the fetcher's ai_related flag and whether it was set at all.
func (r Record) IsAIRelated() (related, ok bool) {
	if r.AIRelated == nil {
		return false, false
	}
	return *r.AIRelated, true
}

var capturedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// CapturedTime parses captured_at. Timestamps without a zone are read as UTC.
// The second return value is false when the field is missing or malformed.
func (r Record) CapturedTime() (time.Time, bool) {
	s := strings.TrimSpace(r.CapturedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range capturedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
