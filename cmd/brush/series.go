package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brush/internal/registry"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List all available series",
	Long:  `Shows the series that can be plotted on the brush stage.`,
	Run:   runSeries,
}

func runSeries(_ *cobra.Command, _ []string) {
	list := registry.List()

	if len(list) == 0 {
		fmt.Println("No series available.")
		return
	}

	fmt.Println("Available series:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range list {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range list {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'brush run <id>' to brush a series.")
}
