package classify

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Matcher decides whether a lowercase text blob contains any of a theme's keywords.
type Matcher interface {
	Match(text string, keywords []string) bool
}

// SubstringMatcher matches a keyword anywhere in the text, including inside a
// larger word ("ai" matches "maintain").
type SubstringMatcher struct{}

func (SubstringMatcher) Match(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// WordMatcher only matches keywords that stand on word boundaries.
type WordMatcher struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func NewWordMatcher() *WordMatcher {
	return &WordMatcher{patterns: make(map[string]*regexp.Regexp)}
}

func (m *WordMatcher) Match(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			return true
		}
		if m.pattern(kw).MatchString(text) {
			return true
		}
	}
	return false
}

func (m *WordMatcher) pattern(kw string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()
	if re, ok := m.patterns[kw]; ok {
		return re
	}
	// \b misbehaves for keywords that start or end with punctuation ("c++").
	re := regexp.MustCompile(`(?i)(?:^|[^\pL\pN_])` + regexp.QuoteMeta(kw) + `(?:$|[^\pL\pN_])`)
	m.patterns[kw] = re
	return re
}

const (
	MatcherSubstring = "substring"
	MatcherWord      = "word"
)

// NewMatcher returns the matching strategy registered under name.
// An empty name selects substring matching.
func NewMatcher(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatcherSubstring:
		return SubstringMatcher{}, nil
	case MatcherWord:
		return NewWordMatcher(), nil
	}
	return nil, fmt.Errorf("unknown matcher %q (valid: %s, %s)", name, MatcherSubstring, MatcherWord)
}
