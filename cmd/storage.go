package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/aitrends/internal/history"
	"github.com/matheuskafuri/aitrends/internal/signal"
)

var flagHistoryLast int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded trend snapshots",
	Long: `List the weekly snapshots stored in the trend history log, one row per theme.

Snapshots are shown oldest first; use --last to limit output to the most recent ones.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHistoryLast < 0 {
			return fmt.Errorf("invalid --last value %d", flagHistoryLast)
		}
		snapshots, err := history.Open(cfg.HistoryPath()).Read()
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(snapshots) == 0 {
			fmt.Fprintln(out, "No snapshots recorded yet.")
			return nil
		}
		if flagHistoryLast > 0 && len(snapshots) > flagHistoryLast {
			snapshots = snapshots[len(snapshots)-flagHistoryLast:]
		}

		fmt.Fprintln(out, renderTable(
			[]string{"Week", "Theme", "Total", "Largecap", "Midcap"},
			historyRows(snapshots),
			2, 3, 4,
		))
		return nil
	},
}

// historyRows flattens snapshots into table rows. A snapshot without matches
// still gets a row so every run is visible.
func historyRows(snapshots []history.Snapshot) [][]string {
	var rows [][]string
	for _, s := range snapshots {
		if len(s.Themes) == 0 {
			rows = append(rows, []string{s.Week, "-", "0", "0", "0"})
			continue
		}
		for _, name := range sortedThemes(s.Themes) {
			c := s.Themes[name]
			rows = append(rows, []string{
				s.Week,
				name,
				strconv.Itoa(c.Total),
				strconv.Itoa(c.Largecap),
				strconv.Itoa(c.Midcap),
			})
		}
	}
	return rows
}

func sortedThemes(themes map[string]history.Counts) []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history log and signal source statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.HistoryPath()
		st, err := history.Open(path).Stat()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("History"))
		fmt.Fprintln(out, renderField("Path", path))
		fmt.Fprintln(out, renderField("Snapshots", strconv.Itoa(st.Snapshots)))
		fmt.Fprintln(out, renderField("Size", formatBytes(st.Size)))
		if st.Snapshots > 0 {
			fmt.Fprintln(out, renderField("Weeks", st.FirstWeek+" .. "+st.LatestWeek))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("Sources"))
		fmt.Fprintln(out, renderTable(
			[]string{"Name", "Path", "Status", "Records", "Newest"},
			sourceRows(signalSources(cfg)),
			3,
		))
		return nil
	},
}

func sourceRows(sources []signal.Source) [][]string {
	rows := make([][]string, 0, len(sources))
	for _, src := range sources {
		records, err := signal.Load(src)
		status := okStyle.Render("ok")
		switch {
		case errors.Is(err, signal.ErrSourceAbsent):
			status = warnStyle.Render("absent")
		case err != nil:
			status = warnStyle.Render("malformed")
		}

		newest := "-"
		if t, ok := newestCapture(records); ok {
			newest = t.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{src.Name, src.Path, status, strconv.Itoa(len(records)), newest})
	}
	return rows
}

// newestCapture skips records whose captured_at is missing or unparsable.
func newestCapture(records []signal.Record) (time.Time, bool) {
	var newest time.Time
	found := false
	for _, r := range records {
		t, ok := r.CapturedTime()
		if !ok {
			continue
		}
		if !found || t.After(newest) {
			newest = t
			found = true
		}
	}
	return newest, found
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLast, "last", 0, "only show the N most recent snapshots")
}
