package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDF writes one page per label, each page the physical label size
func (r *Renderer) PDF(w io.Writer, labels []string) error {
	doc, err := r.document(labels)
	if err != nil {
		return err
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) document(labels []string) (*fpdf.Fpdf, error) {
	l := r.layout
	// portrait keeps Size as given, landscape would swap it
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: l.WidthMM, Ht: l.HeightMM},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, text := range labels {
		raw, err := r.PNGBytes(text, l.PDFFontSize)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}

		name := fmt.Sprintf("label-%d", i)
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, l.WidthMM, l.HeightMM, false, opts, 0, "")
		if err := doc.Error(); err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}
	}
	return doc, nil
}
