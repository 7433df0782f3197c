package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Zachdehooge/temperature-heatmap/internal/config"
	"github.com/Zachdehooge/temperature-heatmap/internal/fetcher"
	"github.com/Zachdehooge/temperature-heatmap/internal/generator"
	"github.com/Zachdehooge/temperature-heatmap/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	logger  *slog.Logger
	metrics *observability.Metrics
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	metrics = observability.NewMetrics()

	rootCmd := &cobra.Command{
		Use:   "temperature-heatmap",
		Short: "Fetch the global temperature record and render a heat map",
		Long: `Temperature Heatmap fetches the monthly global land-surface temperature
record and renders it as a static heat map, one cell per month, colored by
temperature band.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				cfg.LogLevel = "debug"
			}
			cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
			if !cmd.Flags().Changed("output") && os.Getenv("HEATMAP_OUTPUT") == "" {
				cfg.OutputFile = "heatmap." + cfg.OutputFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = observability.NewLogger(cfg)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := generateHeatmap(cmd, cfg); err != nil {
				logger.Error("heat map generation failed", "error", err)
				cmd.PrintErrln(fmt.Errorf("failed to generate heat map: %w", err))
				os.Exit(1)
			}
		},
	}

	// Flags
	rootCmd.PersistentFlags().StringVar(&cfg.DataURL, "url", cfg.DataURL, "Dataset URL")
	rootCmd.PersistentFlags().DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "Timeout for each fetch attempt")
	rootCmd.PersistentFlags().IntVar(&cfg.FetchRetries, "retries", cfg.FetchRetries, "Extra fetch attempts on transient errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "Output file path")
	rootCmd.Flags().StringVarP(&cfg.OutputFormat, "format", "f", cfg.OutputFormat, "Output format: html, svg or png")

	// Additional commands
	addListCmd(rootCmd, cfg)
	addServeCmd(rootCmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// generateHeatmap fetches the dataset and writes the rendered chart
func generateHeatmap(cmd *cobra.Command, cfg *config.Config) error {
	if verbose {
		cmd.Println("Fetching temperature dataset...")
	}

	ds, err := fetchDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if verbose {
		cmd.Println(fmt.Sprintf("Rendering %d months to %s...", len(ds.MonthlyVariance), cfg.OutputFile))
	}

	gen := generator.New(clockwork.NewRealClock(), metrics, logger)
	if err := gen.GenerateHeatmap(ds, cfg.OutputFile, cfg.OutputFormat); err != nil {
		return fmt.Errorf("failed to render heat map: %w", err)
	}

	cmd.Println(fmt.Sprintf("Heat map saved to %s", cfg.OutputFile))
	return nil
}

func fetchDataset(ctx context.Context, cfg *config.Config) (*fetcher.Dataset, error) {
	client := fetcher.NewClient(cfg.DataURL, cfg.FetchTimeout, cfg.FetchRetries, logger, metrics)
	return client.FetchDataset(ctx)
}
