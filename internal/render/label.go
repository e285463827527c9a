package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var parseFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Renderer draws labels for a fixed layout
type Renderer struct {
	layout Layout
}

// NewRenderer creates a Renderer for layout
func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Layout returns the layout the renderer draws with
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Label draws one label: text encoded in a large centred QR code, the same
// code repeated small in each corner and text printed as a caption below.
// Caption fitting starts at fontSize.
func (r *Renderer) Label(text string, fontSize float64) (image.Image, error) {
	l := r.layout
	if l.WidthPx <= 0 || l.HeightPx <= 0 {
		return nil, fmt.Errorf("invalid label size %dx%d", l.WidthPx, l.HeightPx)
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", text, err)
	}
	// one pixel per module, scaled below with nearest neighbour so modules stay crisp
	modules := code.Image(-1)

	canvas := image.NewRGBA(image.Rect(0, 0, l.WidthPx, l.HeightPx))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for _, at := range append([]rect{l.mainCode()}, l.cornerCodes()...) {
		dst := image.Rect(at.x, at.y, at.x+at.size, at.y+at.size)
		draw.NearestNeighbor.Scale(canvas, dst, modules, modules.Bounds(), draw.Src, nil)
	}

	if err := r.caption(canvas, text, fontSize); err != nil {
		return nil, err
	}
	return canvas, nil
}

func (r *Renderer) caption(dst draw.Image, text string, start float64) error {
	f, err := parseFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	faces := map[float64]font.Face{}
	defer func() {
		for _, face := range faces {
			_ = face.Close()
		}
	}()
	faceAt := func(size float64) (font.Face, error) {
		if face, ok := faces[size]; ok {
			return face, nil
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		faces[size] = face
		return face, nil
	}

	var faceErr error
	measure := func(size float64) float64 {
		face, err := faceAt(size)
		if err != nil {
			faceErr = err
			return 0
		}
		return float64(font.MeasureString(face, text).Ceil())
	}

	size := fitFontSize(measure, start, r.layout.captionTarget())
	if faceErr != nil {
		return fmt.Errorf("build font face: %w", faceErr)
	}
	face, err := faceAt(size)
	if err != nil {
		return fmt.Errorf("build font face: %w", err)
	}

	width := font.MeasureString(face, text).Ceil()
	x := (r.layout.WidthPx - width) / 2
	// the caption top is fixed, the drawer wants the baseline
	y := r.layout.captionTop() + face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return nil
}

// PNG draws the label for text and writes it as PNG
func (r *Renderer) PNG(w io.Writer, text string) error {
	img, err := r.Label(text, r.layout.FontSize)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PNGBytes is PNG into a byte slice
func (r *Renderer) PNGBytes(text string, fontSize float64) ([]byte, error) {
	img, err := r.Label(text, fontSize)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
