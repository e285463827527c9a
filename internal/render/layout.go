// Package render draws label images and assembles them into a print PDF.
package render

import "github.com/aki/qrlabel/internal/core/config"

// Layout describes the label canvas
type Layout struct {
	// WidthPx and HeightPx are the raster size of one label
	WidthPx  int
	HeightPx int
	// WidthMM and HeightMM are the physical page size in the PDF
	WidthMM  float64
	HeightMM float64
	// FontSize is where caption fitting starts for PNG output
	FontSize float64
	// PDFFontSize is where caption fitting starts for PDF pages
	PDFFontSize float64
}

// DefaultLayout is a 50x60 mm label rendered at 500x600 px
func DefaultLayout() Layout {
	return LayoutFromConfig(config.DefaultConfig().Label)
}

// LayoutFromConfig converts the label section of the configuration
func LayoutFromConfig(c config.LabelConfig) Layout {
	return Layout{
		WidthPx:     c.WidthPx,
		HeightPx:    c.HeightPx,
		WidthMM:     c.WidthMM,
		HeightMM:    c.HeightMM,
		FontSize:    c.FontSize,
		PDFFontSize: c.PDFFontSize,
	}
}

const (
	mainCodeRatio   = 0.55
	cornerCodeRatio = 0.15
	captionRatio    = 0.85
	// the main code sits this far above the vertical centre to leave room
	// for the caption
	mainCodeLift = 40
	// gap between the caption top and the bottom corner codes
	captionGap = 60

	minFontSize = 20
	maxFontSize = 300
	growStep    = 3
	shrinkStep  = 2
)

type rect struct {
	x, y, size int
}

// mainCode is the large centred code
func (l Layout) mainCode() rect {
	size := int(float64(l.HeightPx) * mainCodeRatio)
	return rect{
		x:    (l.WidthPx - size) / 2,
		y:    (l.HeightPx-size)/2 - mainCodeLift,
		size: size,
	}
}

// cornerCodes are the four small codes, clockwise from the top-left
func (l Layout) cornerCodes() []rect {
	size := int(float64(l.HeightPx) * cornerCodeRatio)
	return []rect{
		{x: 0, y: 0, size: size},
		{x: l.WidthPx - size, y: 0, size: size},
		{x: l.WidthPx - size, y: l.HeightPx - size, size: size},
		{x: 0, y: l.HeightPx - size, size: size},
	}
}

func (l Layout) captionTarget() float64 {
	return float64(int(float64(l.WidthPx) * captionRatio))
}

func (l Layout) captionTop() int {
	return l.HeightPx - int(float64(l.HeightPx)*cornerCodeRatio) - captionGap
}

// fitFontSize grows the size in steps of 3 while the caption is narrower
// than target, stepping back once it would overflow, then shrinks in steps
// of 2 while it is still too wide.
func fitFontSize(measure func(size float64) float64, start, target float64) float64 {
	size := start
	width := measure(size)

	for width < target && size < maxFontSize {
		next := measure(size + growStep)
		if next > target {
			break
		}
		size += growStep
		width = next
	}

	for width > target && size > minFontSize {
		size -= shrinkStep
		width = measure(size)
	}

	return size
}
