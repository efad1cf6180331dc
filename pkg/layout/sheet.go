package layout

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/keyforge/pkg/buildinfo"
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/fonts"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// SheetOptions configures the PDF sheet.
type SheetOptions struct {
	Title  string
	Margin float64 // mm around the board
	Gap    float64 // mm between neighbouring footprints
}

// DefaultSheetOptions returns a 10mm margin and a 1mm key gap.
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{Margin: 10, Gap: 1}
}

const (
	titleSize = 12.0 // pt
	labelSize = 5.0  // pt
	unitSize  = 7.0  // pt
	titleBand = 12.0 // mm reserved above the board
)

var (
	footprintFill   = color.RGBA{0xf4, 0xf1, 0xea, 0xff}
	footprintStroke = color.RGBA{0x55, 0x55, 0x55, 0xff}
	textColor       = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

// Sheet draws the placed footprints at 1:1 scale with each key's label and
// width, and returns the PDF.
func Sheet(ps []Placement, opts SheetOptions) ([]byte, error) {
	if len(ps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no keys to draw")
	}
	if opts.Margin <= 0 {
		opts.Margin = DefaultSheetOptions().Margin
	}

	sans, err := fonts.Sheet()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load sheet font")
	}
	mono, err := fonts.Mono()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}

	lo, hi := Bounds(ps)
	width := hi.X - lo.X + 2*opts.Margin
	height := hi.Y - lo.Y + 2*opts.Margin + titleBand

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	// board y grows away from the viewer, which is up on the page
	ox, oy := opts.Margin-lo.X, opts.Margin-lo.Y

	if opts.Title != "" {
		face := sans.Face(titleSize, textColor, canvas.FontBold, canvas.FontNormal)
		ctx.DrawText(opts.Margin, height-opts.Margin/2-face.Metrics().Ascent, canvas.NewTextLine(face, opts.Title, canvas.Left))
	}

	labelFace := mono.Face(labelSize, textColor, canvas.FontRegular, canvas.FontNormal)
	unitFace := sans.Face(unitSize, textColor, canvas.FontBold, canvas.FontNormal)
	for _, p := range ps {
		size := p.Label.Units().Scale(spec.UnitPitch)
		w, h := size.X-opts.Gap, size.Y-opts.Gap
		x, y := ox+p.Pos.X-w/2, oy+p.Pos.Y-h/2

		ctx.SetFillColor(footprintFill)
		ctx.SetStrokeColor(footprintStroke)
		ctx.SetStrokeWidth(0.2)
		ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, 1.5))

		cx, cy := ox+p.Pos.X, oy+p.Pos.Y
		u := p.Label.Units()
		ctx.DrawText(cx, cy+1, canvas.NewTextLine(unitFace, fmt.Sprintf("%gu", u.X), canvas.Center))
		ctx.DrawText(cx, cy-3, canvas.NewTextLine(labelFace, labelText(p), canvas.Center))
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	writer.SetInfo(opts.Title, "keycap placement", "keycaps", "", buildinfo.Generator())
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write sheet")
	}
	return buf.Bytes(), nil
}

// labelText is the short form printed on a footprint: the row and suffix.
func labelText(p Placement) string {
	if p.Label.Suffix == "" {
		return p.Label.Row
	}
	return p.Label.Row + " " + p.Label.Suffix
}
