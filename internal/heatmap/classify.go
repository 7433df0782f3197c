package heatmap

import (
	"errors"
	"fmt"
	"image/color"
)

// ColorBand pairs a temperature threshold with the color used for cells
// warmer than it.
type ColorBand struct {
	Color     string
	Threshold float64
	RGBA      color.RGBA
}

// Bands is a threshold table ordered by strictly decreasing threshold. The
// last entry is the catch-all floor.
type Bands []ColorBand

// DefaultBands is the legend used by the heat map.
var DefaultBands = Bands{
	{Color: "red", Threshold: 12, RGBA: color.RGBA{255, 0, 0, 255}},
	{Color: "orange", Threshold: 10, RGBA: color.RGBA{255, 165, 0, 255}},
	{Color: "yellow", Threshold: 9, RGBA: color.RGBA{255, 255, 0, 255}},
	{Color: "lightgreen", Threshold: 8, RGBA: color.RGBA{144, 238, 144, 255}},
	{Color: "green", Threshold: 6, RGBA: color.RGBA{0, 128, 0, 255}},
	{Color: "blue", Threshold: 3, RGBA: color.RGBA{0, 0, 255, 255}},
	{Color: "purple", Threshold: 1, RGBA: color.RGBA{128, 0, 128, 255}},
	{Color: "black", Threshold: 0, RGBA: color.RGBA{0, 0, 0, 255}},
}

// Classify returns the band for temp using DefaultBands.
func Classify(temp float64) ColorBand {
	return DefaultBands.Classify(temp)
}

// Classify scans the table in order and returns the first band whose
// threshold is strictly below temp, falling back to the last band. A
// temperature equal to a threshold lands in the next band down.
func (b Bands) Classify(temp float64) ColorBand {
	return b[b.Index(temp)]
}

// Index is Classify returning the band's position in the table.
func (b Bands) Index(temp float64) int {
	for i, band := range b {
		if temp > band.Threshold {
			return i
		}
	}
	return len(b) - 1
}

// Validate reports whether the table is usable for classification.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return errors.New("color band table is empty")
	}
	for i := 1; i < len(b); i++ {
		if b[i].Threshold >= b[i-1].Threshold {
			return fmt.Errorf("color band %d (%s): threshold %g is not below %g",
				i, b[i].Color, b[i].Threshold, b[i-1].Threshold)
		}
	}
	return nil
}
