package main

import (
	"fmt"
	"os"

	"github.com/Zachdehooge/temperature-heatmap/internal/config"
	"github.com/Zachdehooge/temperature-heatmap/internal/heatmap"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// swatchColors approximates each band color with a terminal color.
var swatchColors = map[string]color.Attribute{
	"red":        color.FgRed,
	"orange":     color.FgHiRed,
	"yellow":     color.FgYellow,
	"lightgreen": color.FgHiGreen,
	"green":      color.FgGreen,
	"blue":       color.FgBlue,
	"purple":     color.FgMagenta,
	"black":      color.FgHiBlack,
}

// addListCmd adds a 'list' subcommand that summarizes the dataset per color
// band without rendering a chart
func addListCmd(rootCmd *cobra.Command, cfg *config.Config) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List color bands and how many months fall in each",
		Run: func(cmd *cobra.Command, args []string) {
			ds, err := fetchDataset(cmd.Context(), cfg)
			if err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to fetch dataset: %w", err))
				os.Exit(1)
			}

			l, err := heatmap.Build(ds, heatmap.DefaultGeometry, heatmap.DefaultBands)
			if err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to lay out chart: %w", err))
				os.Exit(1)
			}

			cmd.Println(l.Description())
			cmd.Println(fmt.Sprintf("Months: %d", len(l.Cells)))
			cmd.Println("---")

			counts := l.BandCounts(heatmap.DefaultBands)
			for i, band := range heatmap.DefaultBands {
				swatch := color.New(swatchColors[band.Color]).Sprint("███")
				cmd.Println(fmt.Sprintf("%s %-5s %-10s %6d", swatch, ">"+heatmap.FormatNumber(band.Threshold), band.Color, counts[i]))
			}
		},
	}

	rootCmd.AddCommand(listCmd)
}
