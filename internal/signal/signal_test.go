package signal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecordText(t *testing.T) {
	r := Record{Title: "New AI Training Program", Snippet: "enablement for managers"}
	assert.Equal(t, "New AI Training Program enablement for managers", r.Text())

	assert.Equal(t, " ", Record{}.Text())
}

func TestHasSegment(t *testing.T) {
	tests := []struct {
		segment string
		seg     Segment
		want    bool
	}{
		{"largecap", Largecap, true},
		{"midcap", Midcap, true},
		{"largecap", Midcap, false},
		{"Largecap", Largecap, false},
		{"smallcap", Largecap, false},
		{"", Midcap, false},
	}
	for _, tt := range tests {
		r := Record{Segment: tt.segment}
		if got := r.HasSegment(tt.seg); got != tt.want {
			t.Errorf("Record{Segment: %q}.HasSegment(%q) = %v, want %v", tt.segment, tt.seg, got, tt.want)
		}
	}
}

func TestCapturedTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2026-01-05T10:11:12.123456", time.Date(2026, 1, 5, 10, 11, 12, 123456000, time.UTC), true},
		{"2026-01-05T10:11:12", time.Date(2026, 1, 5, 10, 11, 12, 0, time.UTC), true},
		{"2026-01-05T10:11:12+05:30", time.Date(2026, 1, 5, 4, 41, 12, 0, time.UTC), true},
		{"2026-01-05", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := Record{CapturedAt: tt.input}.CapturedTime()
		if ok != tt.ok {
			t.Errorf("CapturedTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("CapturedTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsAIRelated(t *testing.T) {
	_, ok := Record{}.IsAIRelated()
	assert.False(t, ok)

	yes := true
	related, ok := Record{AIRelated: &yes}.IsAIRelated()
	assert.True(t, ok)
	assert.True(t, related)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rss_signals.json", `[
		{"captured_at": "2026-01-05T10:00:00", "source_channel": "rss", "title": "A", "snippet": "a", "evidence_weight": 3},
		{"title": "B", "segment": "midcap", "skill_hits": ["llm", "rag"], "ai_related": true}
	]`)

	records, err := Load(Source{Name: "rss", Path: path})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Title)
	assert.Equal(t, 3, records[0].EvidenceWeight)
	assert.Equal(t, "midcap", records[1].Segment)
	assert.Equal(t, []string{"llm", "rag"}, records[1].SkillHits)
	require.NotNil(t, records[1].AIRelated)
	assert.True(t, *records[1].AIRelated)
}

func TestLoadEmptyArray(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.json", "[]")
	records, err := Load(Source{Name: "empty", Path: path})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadAbsent(t *testing.T) {
	_, err := Load(Source{Name: "missing", Path: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceAbsent))
	assert.False(t, errors.Is(err, ErrSourceMalformed))

	var serr *SourceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindAbsent, serr.Kind)
	assert.Equal(t, "missing", serr.Source.Name)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"title": "A"`},
		{"object", `{"title": "A"}`},
		{"null", `null`},
		{"blank", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.json", tt.content)
			_, err := Load(Source{Name: "bad", Path: path})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSourceMalformed))
			assert.False(t, errors.Is(err, ErrSourceAbsent))
		})
	}
}

func TestLoadToleratesBadFieldTypes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jobs.json", `[
		{"title": "AI training", "segment": "largecap", "evidence_weight": 2},
		{"title": "enablement", "evidence_weight": "3", "skill_hits": ["llm", 4]},
		{"title": "x", "segment": 7, "ai_related": "yes"},
		null,
		"stray",
		{"title": 5, "snippet": "governance"}
	]`)

	records, err := Load(Source{Name: "jobs", Path: path})
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, Record{Title: "AI training", Segment: "largecap", EvidenceWeight: 2}, records[0])
	assert.Equal(t, Record{Title: "enablement"}, records[1])
	assert.Equal(t, Record{Title: "x"}, records[2])
	assert.Equal(t, Record{Snippet: "governance"}, records[3])

	result := LoadAll([]Source{{Name: "jobs", Path: path}})
	assert.Len(t, result.Signals, 4)
	assert.Empty(t, result.Skipped)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	rss := writeFile(t, dir, "rss.json", `[{"title": "one"}, {"title": "two"}]`)
	jobs := writeFile(t, dir, "jobs.json", `[{"title": "three", "segment": "largecap"}]`)
	bad := writeFile(t, dir, "bad.json", `not json`)

	result := LoadAll([]Source{
		{Name: "rss", Path: rss},
		{Name: "missing", Path: filepath.Join(dir, "missing.json")},
		{Name: "bad", Path: bad},
		{Name: "jobs", Path: jobs},
	})

	require.Len(t, result.Signals, 3)
	assert.Equal(t, "one", result.Signals[0].Title)
	assert.Equal(t, "three", result.Signals[2].Title)

	require.Len(t, result.Loaded, 2)
	assert.Equal(t, SourceStatus{Source: Source{Name: "rss", Path: rss}, Records: 2}, result.Loaded[0])

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, KindAbsent, result.Skipped[0].Kind)
	assert.Equal(t, KindMalformed, result.Skipped[1].Kind)

	err := result.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceAbsent))
	assert.True(t, errors.Is(err, ErrSourceMalformed))
}

func TestLoadAllNoSources(t *testing.T) {
	result := LoadAll(nil)
	assert.Empty(t, result.Signals)
	assert.NoError(t, result.Err())
}
