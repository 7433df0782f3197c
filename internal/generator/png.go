package generator

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/Zachdehooge/temperature-heatmap/internal/heatmap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	background = color.RGBA{255, 255, 255, 255}
	ink        = color.RGBA{0, 0, 0, 255}
)

// renderPNG rasterizes the same layout the SVG uses. basicfont only covers
// ASCII, so temperatures are left off the raster.
func renderPNG(l *heatmap.Layout) ([]byte, error) {
	w, h := px(l.Width), px(l.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, c := range l.Cells {
		fillRect(img, c.X, c.Y, c.Width, c.Height, c.Band.RGBA)
	}

	pad := l.Padding
	axisY := l.Height - pad
	hLine(img, px(pad), px(l.Width-2*pad), px(axisY))
	vLine(img, px(pad), px(pad), px(axisY))

	for _, t := range l.XTicks {
		x := px(t.Pos)
		vLine(img, x, px(axisY), px(axisY)+6)
		label(img, t.Label, x-textWidth(t.Label)/2, px(axisY)+19)
	}
	for _, t := range l.YTicks {
		y := px(t.Pos)
		hLine(img, px(pad)-6, px(pad), y)
		label(img, t.Label, px(pad)-9-textWidth(t.Label), y+4)
	}

	for _, e := range l.Legend {
		fillRect(img, e.X, e.Y, e.Width, e.Height, e.Band.RGBA)
		label(img, e.Label, px(e.X), px(e.LabelY)-2)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func px(v float64) int { return int(math.Round(v)) }

func fillRect(img *image.RGBA, x, y, w, h float64, c color.RGBA) {
	r := image.Rect(px(x), px(y), px(x+w), px(y+h))
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func hLine(img *image.RGBA, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, ink)
	}
}

func vLine(img *image.RGBA, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, ink)
	}
}

func label(img *image.RGBA, s string, x, baseline int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
