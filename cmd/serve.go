package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Zachdehooge/temperature-heatmap/internal/config"
	"github.com/Zachdehooge/temperature-heatmap/internal/fetcher"
	"github.com/Zachdehooge/temperature-heatmap/internal/generator"
	"github.com/Zachdehooge/temperature-heatmap/internal/server"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// addServeCmd adds a 'serve' subcommand that renders the chart once and
// serves it over HTTP
func addServeCmd(rootCmd *cobra.Command, cfg *config.Config) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Render the heat map and serve it over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runServer(cmd, cfg); err != nil {
				logger.Error("server failed", "error", err)
				cmd.PrintErrln(err)
				os.Exit(1)
			}
		},
	}
	serveCmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()

	ds, err := fetchDataset(ctx, cfg)
	if err != nil {
		return err
	}
	pages, err := renderPages(ds)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.HTTPAddr, pages, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	cmd.Println(fmt.Sprintf("Open at http://localhost%s/", cfg.HTTPAddr))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func renderPages(ds *fetcher.Dataset) (server.Pages, error) {
	gen := generator.New(clockwork.NewRealClock(), metrics, logger)

	var pages server.Pages
	targets := []struct {
		format string
		dst    *[]byte
	}{
		{"html", &pages.HTML},
		{"svg", &pages.SVG},
		{"png", &pages.PNG},
	}
	for _, t := range targets {
		out, err := gen.Render(ds, t.format)
		if err != nil {
			return server.Pages{}, err
		}
		*t.dst = out
	}
	return pages, nil
}
