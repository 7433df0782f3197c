package heatmap

import (
	"fmt"
	"strconv"

	"github.com/Zachdehooge/temperature-heatmap/internal/fetcher"
)

// MonthNames indexed by month-1.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// yearTickEvery keeps the horizontal axis readable across ~260 years.
const yearTickEvery = 15

// Geometry is the canvas size in pixels.
type Geometry struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultGeometry matches the published chart.
var DefaultGeometry = Geometry{Width: 1000, Height: 500, Padding: 60}

// Cell is one record placed on the grid.
type Cell struct {
	Year     int
	Month    int
	Variance float64
	Temp     float64

	X, Y          float64
	Width, Height float64
	Band          ColorBand
}

// MonthIndex is the zero-based month used by the data-month attribute.
func (c Cell) MonthIndex() int { return c.Month - 1 }

// TooltipLines is the hover text: "<Month>, <year>", temperature, variance.
func (c Cell) TooltipLines() []string {
	return []string{
		fmt.Sprintf("%s, %d", MonthName(c.Month), c.Year),
		FormatNumber(c.Temp) + "℃",
		FormatNumber(c.Variance) + "℃",
	}
}

// Tick is an axis label anchored at the center of its band.
type Tick struct {
	Value int
	Label string
	Pos   float64
}

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Band          ColorBand
	Label         string
	X, Y          float64
	Width, Height float64
	LabelY        float64
}

// Layout is everything a renderer needs to draw the chart.
type Layout struct {
	Geometry
	BaseTemperature float64
	FirstYear       int
	LastYear        int

	Cells  []Cell
	XTicks []Tick
	YTicks []Tick
	Legend []LegendEntry

	// Skipped counts records whose year or month had no band.
	Skipped int
}

// Description is the subtitle shown under the chart title.
func (l *Layout) Description() string {
	return fmt.Sprintf("%d - %d: base temperature %s℃",
		l.FirstYear, l.LastYear, FormatNumber(l.BaseTemperature))
}

// BandCounts returns how many cells fall in each band, indexed like bands.
func (l *Layout) BandCounts(bands Bands) []int {
	counts := make([]int, len(bands))
	for _, c := range l.Cells {
		counts[bands.Index(c.Temp)]++
	}
	return counts
}

// Build places every record of ds on the grid and classifies it.
func Build(ds *fetcher.Dataset, g Geometry, bands Bands) (*Layout, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	if len(ds.MonthlyVariance) == 0 {
		return nil, fetcher.ErrEmptyDataset
	}

	years := make([]int, len(ds.MonthlyVariance))
	for i, r := range ds.MonthlyVariance {
		years[i] = r.Year
	}
	xScale := NewBandScale(years, g.Padding, g.Width-2*g.Padding, true)
	yScale := NewBandScale(reversedMonths(), g.Padding, g.Height-g.Padding, true)

	l := &Layout{
		Geometry:        g,
		BaseTemperature: ds.BaseTemperature,
		FirstYear:       years[0],
		LastYear:        years[0],
		Cells:           make([]Cell, 0, len(ds.MonthlyVariance)),
	}

	for _, r := range ds.MonthlyVariance {
		l.FirstYear = min(l.FirstYear, r.Year)
		l.LastYear = max(l.LastYear, r.Year)

		x, okX := xScale.Pos(r.Year)
		y, okY := yScale.Pos(r.Month)
		if !okX || !okY {
			l.Skipped++
			continue
		}
		temp := ds.Temperature(r)
		l.Cells = append(l.Cells, Cell{
			Year:     r.Year,
			Month:    r.Month,
			Variance: r.Variance,
			Temp:     temp,
			X:        x,
			Y:        y,
			Width:    xScale.Bandwidth(),
			Height:   yScale.Bandwidth(),
			Band:     bands.Classify(temp),
		})
	}

	for _, year := range XTicks(xScale.Domain()) {
		pos, _ := xScale.Pos(year)
		l.XTicks = append(l.XTicks, Tick{
			Value: year,
			Label: strconv.Itoa(year),
			Pos:   pos + xScale.Bandwidth()/2,
		})
	}
	for _, month := range yScale.Domain() {
		pos, _ := yScale.Pos(month)
		l.YTicks = append(l.YTicks, Tick{
			Value: month,
			Label: MonthName(month),
			Pos:   pos + yScale.Bandwidth()/2,
		})
	}

	l.Legend = legend(bands, g)
	return l, nil
}

// XTicks keeps the years divisible by 15, in domain order.
func XTicks(years []int) []int {
	var ticks []int
	for _, y := range years {
		if y%yearTickEvery == 0 {
			ticks = append(ticks, y)
		}
	}
	return ticks
}

// MonthName returns the English month name for a 1-based month, or "" when
// the month is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// FormatNumber prints v in its shortest round-trip form, "9" rather than
// "9.000000".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// legend lays the swatches out left to right along the bottom edge.
func legend(bands Bands, g Geometry) []LegendEntry {
	const (
		left   = 25
		width  = 50
		height = 20
		inset  = 35
	)
	entries := make([]LegendEntry, len(bands))
	for i, b := range bands {
		entries[i] = LegendEntry{
			Band:   b,
			Label:  ">" + FormatNumber(b.Threshold),
			X:      left + width*float64(i),
			Y:      g.Height - inset,
			Width:  width,
			Height: height,
			LabelY: g.Height,
		}
	}
	return entries
}

// reversedMonths puts December first so January renders at the bottom.
func reversedMonths() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = 12 - i
	}
	return months
}
