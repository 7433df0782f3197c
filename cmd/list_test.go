package main

import (
	"testing"

	"github.com/Zachdehooge/temperature-heatmap/internal/heatmap"
	"github.com/stretchr/testify/assert"
)

func TestSwatchColorsCoverEveryBand(t *testing.T) {
	for _, b := range heatmap.DefaultBands {
		_, ok := swatchColors[b.Color]
		assert.True(t, ok, "no terminal color for band %s", b.Color)
	}
}
