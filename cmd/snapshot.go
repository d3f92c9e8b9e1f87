package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matheuskafuri/aitrends/internal/classify"
	"github.com/matheuskafuri/aitrends/internal/config"
	"github.com/matheuskafuri/aitrends/internal/history"
	"github.com/matheuskafuri/aitrends/internal/signal"
	"github.com/matheuskafuri/aitrends/internal/trend"
)

var now = time.Now

func runSnapshot(cmd *cobra.Command, args []string) error {
	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Status())
	return nil
}

func newRunner(cfg *config.Config, logger *zap.Logger) (*trend.Runner, error) {
	matcher, err := classify.NewMatcher(cfg.MatcherName())
	if err != nil {
		return nil, err
	}
	return &trend.Runner{
		RegistryPath: cfg.RegistryPath(),
		Sources:      signalSources(cfg),
		Log:          history.Open(cfg.HistoryPath()),
		Matcher:      matcher,
		Now:          now,
		Logger:       logger,
	}, nil
}

func signalSources(cfg *config.Config) []signal.Source {
	var sources []signal.Source
	for _, s := range cfg.EnabledSources() {
		sources = append(sources, signal.Source{Name: s.Name, Path: s.Path})
	}
	return sources
}
