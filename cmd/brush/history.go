package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-brush/internal/platform/tui"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

var (
	flagHistorySeries string
	flagHistoryLimit  int
	flagHistoryPlain  bool
	flagHistoryStats  bool
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse or print saved selections",
	Long: `Show the selections saved by 'brush run', 'brush serve', and 'brush remote'.

In a terminal this opens an interactive browser; use --plain to print a
table instead.

Examples:
  brush history
  brush history --plain --series sine --limit 5
  brush history --stats --series walk
  brush history --clear --series walk`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistorySeries, "series", "", "Only show this series")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of selections to print")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a table instead of browsing")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Print statistics for --series")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete saved selections (all, or --series)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening selection database: %w", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		n, err := store.ClearSelections(flagHistorySeries)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d selections.\n", n)
		return nil

	case flagHistoryStats:
		if flagHistorySeries == "" {
			return errors.New("--stats needs --series")
		}
		return printStats(store, flagHistorySeries)

	case flagHistoryPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		return printHistory(store, flagHistorySeries, flagHistoryLimit)
	}

	width, height := terminalSize()
	return tui.RunHistory(store, width, height)
}

func printHistory(store *storage.Store, series string, limit int) error {
	selections, err := store.RecentSelections(series, limit)
	if err != nil {
		return err
	}

	if len(selections) == 0 {
		fmt.Println("No selections recorded yet.")
		fmt.Println()
		fmt.Println("Run 'brush run' and drag on the stage to make one!")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-20s  %-13s  %-13s  %s\n", "ID", "Series", "Session", "X", "Y", "Date")
	fmt.Printf("  %-8s  %-8s  %-20s  %-13s  %-13s  %s\n", "--", "------", "-------", "-", "-", "----")

	for _, s := range selections {
		id := s.SelectionID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-8s  %-20s  %-13s  %-13s  %s\n",
			id, s.Series, s.Session,
			fmt.Sprintf("%.0f..%.0f", s.Start.X, s.End.X),
			fmt.Sprintf("%.0f..%.0f", s.Start.Y, s.End.Y),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func printStats(store *storage.Store, series string) error {
	stats, err := store.GetStats(series)
	if err != nil {
		return err
	}

	fmt.Printf("Selections - %s\n", series)
	fmt.Println()
	fmt.Printf("  Count:       %d\n", stats.Count)
	if stats.Count == 0 {
		return nil
	}
	fmt.Printf("  Avg width:   %.1f\n", stats.AvgWidth)
	fmt.Printf("  Avg height:  %.1f\n", stats.AvgHeight)
	fmt.Printf("  Last:        %s\n", stats.LastBrushed.Format("2006-01-02 15:04"))
	return nil
}
