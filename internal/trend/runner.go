package trend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matheuskafuri/aitrends/internal/classify"
	"github.com/matheuskafuri/aitrends/internal/history"
	"github.com/matheuskafuri/aitrends/internal/signal"
)

// Runner performs one aggregation pass: load the theme registry and every
// signal source, count themes for the current week and append the snapshot
// to the history log.
type Runner struct {
	RegistryPath string
	Sources      []signal.Source
	Log          *history.Log
	Matcher      classify.Matcher
	Now          func() time.Time
	Logger       *zap.Logger
}

// Result describes a completed run.
type Result struct {
	Week       string
	Signals    int
	Snapshot   history.Snapshot
	HistoryLen int
	Loaded     []signal.SourceStatus
	Skipped    []*signal.SourceError
}

// Status is the one-line summary printed after a successful run.
func (r *Result) Status() string {
	return fmt.Sprintf("Trend snapshot saved for %s", r.Week)
}

// Run executes the pass. Registry errors are returned before anything is
// written. Every signal is attributed to the week of Now, whatever its own
// captured_at says.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	matcher := r.Matcher
	if matcher == nil {
		matcher = classify.SubstringMatcher{}
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	if r.Log == nil {
		return nil, fmt.Errorf("no history log configured")
	}

	reg, err := classify.LoadRegistry(r.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("loading theme registry: %w", err)
	}
	logger.Debug("theme registry loaded",
		zap.String("path", r.RegistryPath),
		zap.Int("themes", len(reg)))

	loaded := signal.LoadAll(r.Sources)
	for _, s := range loaded.Skipped {
		logger.Warn("skipping signal source",
			zap.String("source", s.Source.Name),
			zap.String("path", s.Source.Path),
			zap.String("kind", string(s.Kind)),
			zap.Error(s.Err))
	}
	for _, s := range loaded.Loaded {
		logger.Debug("signal source loaded",
			zap.String("source", s.Source.Name),
			zap.Int("records", s.Records))
	}

	week := WeekKey(now())
	snap := history.Snapshot{
		Week:   week,
		Themes: Aggregate(loaded.Signals, reg, matcher),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := r.Log.Append(snap)
	if err != nil {
		return nil, fmt.Errorf("appending snapshot: %w", err)
	}
	logger.Info("trend snapshot appended",
		zap.String("week", week),
		zap.Int("signals", len(loaded.Signals)),
		zap.Int("themes", len(snap.Themes)),
		zap.Int("history_len", n))

	return &Result{
		Week:       week,
		Signals:    len(loaded.Signals),
		Snapshot:   snap,
		HistoryLen: n,
		Loaded:     loaded.Loaded,
		Skipped:    loaded.Skipped,
	}, nil
}
