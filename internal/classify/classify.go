package classify

import "strings"

// Detect returns the sorted names of every theme whose keywords appear in text.
// Matching is case-insensitive and a text may belong to several themes.
func Detect(text string, reg Registry, m Matcher) []string {
	blob := strings.ToLower(text)
	var hits []string
	for _, name := range reg.Names() {
		if m.Match(blob, reg[name].Keywords) {
			hits = append(hits, name)
		}
	}
	return hits
}
