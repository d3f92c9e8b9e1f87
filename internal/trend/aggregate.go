package trend

import (
	"github.com/matheuskafuri/aitrends/internal/classify"
	"github.com/matheuskafuri/aitrends/internal/history"
	"github.com/matheuskafuri/aitrends/internal/signal"
)

// Aggregate tallies, per theme, how many signals mention it. A signal adds one
// to the total of every theme it matches and, when its segment is exactly
// largecap or midcap, one to that segment's count. Themes nothing matched are
// left out of the result.
func Aggregate(signals []signal.Record, reg classify.Registry, m classify.Matcher) map[string]history.Counts {
	counts := make(map[string]history.Counts)
	for _, s := range signals {
		for _, theme := range classify.Detect(s.Text(), reg, m) {
			c := counts[theme]
			c.Total++
			switch {
			case s.HasSegment(signal.Largecap):
				c.Largecap++
			case s.HasSegment(signal.Midcap):
				c.Midcap++
			}
			counts[theme] = c
		}
	}
	return counts
}
