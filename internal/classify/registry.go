package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	ErrRegistryMissing   = errors.New("theme registry missing")
	ErrRegistryEmpty     = errors.New("theme registry empty")
	ErrRegistryMalformed = errors.New("theme registry malformed")
)

// Theme is a named category defined by a static keyword set.
type Theme struct {
	Keywords []string `json:"keywords"`
}

// Registry maps theme name to its keywords. It is loaded whole and never mutated.
type Registry map[string]Theme

// Names returns the theme names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type rawTheme struct {
	Keywords *[]string `json:"keywords"`
}

// LoadRegistry reads a theme registry file of the form
// {"Theme": {"keywords": ["a", "b"]}}. Keywords are kept as written; an empty
// keyword matches every signal.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRegistryMissing, path)
		}
		return nil, fmt.Errorf("reading theme registry: %w", err)
	}

	var raw map[string]rawTheme
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRegistryMalformed, path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRegistryEmpty, path)
	}

	reg := make(Registry, len(raw))
	for name, t := range raw {
		if t.Keywords == nil {
			return nil, fmt.Errorf("%w: theme %q has no keywords field", ErrRegistryMalformed, name)
		}
		reg[name] = Theme{Keywords: *t.Keywords}
	}
	return reg, nil
}
