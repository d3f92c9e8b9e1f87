package trend

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// WeekLayout is year plus the zero-padded, Sunday-based week of the year (00-53).
const WeekLayout = "%Y-W%U"

// WeekKey labels the week containing t, evaluated in UTC.
func WeekKey(t time.Time) string {
	return strftime.Format(WeekLayout, t.UTC())
}
