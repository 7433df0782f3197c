package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/Zachdehooge/temperature-heatmap/internal/fetcher"
	"github.com/Zachdehooge/temperature-heatmap/internal/heatmap"
	"github.com/Zachdehooge/temperature-heatmap/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/natefinch/atomic"
)

// Generator turns a dataset into a rendered chart.
type Generator struct {
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger
	bands    heatmap.Bands
	geometry heatmap.Geometry
}

// New creates a Generator drawing the default legend on the default canvas.
func New(clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
		bands:    heatmap.DefaultBands,
		geometry: heatmap.DefaultGeometry,
	}
}

// Render lays out ds and encodes it in format (html, svg or png).
func (g *Generator) Render(ds *fetcher.Dataset, format string) ([]byte, error) {
	l, err := heatmap.Build(ds, g.geometry, g.bands)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out chart: %w", err)
	}
	if l.Skipped > 0 {
		g.logger.Warn("records without a grid position were dropped", "skipped", l.Skipped)
	}

	var out []byte
	switch format {
	case "html":
		out, err = g.renderHTML(l)
	case "svg":
		out, err = renderSVG(l)
	case "png":
		out, err = renderPNG(l)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}

	g.metrics.RendersTotal.WithLabelValues(format).Inc()
	g.metrics.CellsRendered.Set(float64(len(l.Cells)))
	g.logger.Debug("chart rendered", "format", format, "cells", len(l.Cells), "bytes", len(out))
	return out, nil
}

// GenerateHeatmap renders ds and atomically replaces outputPath with the result,
// so a reader never sees a partially written file.
func (g *Generator) GenerateHeatmap(ds *fetcher.Dataset, outputPath, format string) error {
	out, err := g.Render(ds, format)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(outputPath, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("write %s failed: %w", outputPath, err)
	}
	g.logger.Info("heat map written", "path", outputPath, "format", format, "bytes", len(out))
	return nil
}

// chartData is what the chart templates see.
type chartData struct {
	*heatmap.Layout
	Standalone bool
}

// AxisY is where the horizontal axis sits.
func (d chartData) AxisY() float64 { return d.Height - d.Padding }

// PlotBottom is the lower edge of the vertical axis.
func (d chartData) PlotBottom() float64 { return d.Height - d.Padding }

// PlotRight is the right edge of the horizontal axis.
func (d chartData) PlotRight() float64 { return d.Width - 2*d.Padding }

var funcs = template.FuncMap{
	"num":    heatmap.FormatNumber,
	"toJSON": toJSON,
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
