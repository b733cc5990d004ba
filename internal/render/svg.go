// internal/render/svg.go
//
// SVG postcards drawn with svgo. Layout mirrors the ASCII renderer: rounded
// LTR boxes on a midline, a thinner internal box, TSD tick lines and an
// optional coordinate ruler.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"ltrmap-core/model"
)

const (
	elementPadX      = 12
	elementLTRHeight = 24
	elementIntHeight = 14
)

// SVGMap renders one element to w as a standalone SVG document.
func SVGMap(w io.Writer, e *model.RepeatRegion, width, height int, ruler bool, paletteName string) {
	colors := PaletteByName(paletteName)
	bodyWidth := width - 2*elementPadX
	midY := height / 2

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+colors.BG)

	arrow := "→"
	if e.Strand == "-" {
		arrow = "←"
	}
	meta := fmt.Sprintf("%s:%s  fam:%s  span:%d-%d  ltr_id:%s  motif:%s  tsd:%s",
		e.Scaffold, e.ID, orNA(e.Superfamily), e.Start, e.End,
		identityText(e.Identity), orNA(e.Motif), orNA(e.TSD))
	canvas.Text(elementPadX, 20, arrow, "font-size:16px;fill:"+colors.Text)
	canvas.Text(elementPadX+20, 20, meta, "font-size:12px;fill:"+colors.Text)

	drawSpan := func(start, end int, color string, boxHeight int) {
		x1 := elementPadX + scaleX(start, e.Start, e.End, bodyWidth)
		x2 := elementPadX + scaleX(end, e.Start, e.End, bodyWidth)
		w := x2 - x1
		if w < 1 {
			w = 1
		}
		canvas.Roundrect(x1, midY-boxHeight/2, w, boxHeight, 4, 4, "fill:"+color)
	}

	if e.LTR5 != nil {
		drawSpan(e.LTR5.Start, e.LTR5.End, colors.LTR, elementLTRHeight)
	}
	if e.LTR3 != nil {
		drawSpan(e.LTR3.Start, e.LTR3.End, colors.LTR, elementLTRHeight)
	}
	if e.LTR5 != nil && e.LTR3 != nil && e.LTR3.Start-e.LTR5.End > 1 {
		drawSpan(e.LTR5.End+1, e.LTR3.Start-1, colors.Internal, elementIntHeight)
	}

	for _, pos := range []*int{e.TSD5, e.TSD3} {
		if pos == nil {
			continue
		}
		x := elementPadX + scaleX(*pos, e.Start, e.End, bodyWidth)
		canvas.Line(x, midY-elementLTRHeight/2-6, x, midY+elementLTRHeight/2+6,
			"stroke:"+colors.TSD+";stroke-width:2")
	}

	if ruler {
		canvas.Text(elementPadX, height-6, fmt.Sprintf("%d", e.Start),
			"font-size:10px;fill:"+colors.Text)
		canvas.Text(width-elementPadX, height-6, fmt.Sprintf("%d", e.End),
			"font-size:10px;fill:"+colors.Text+";text-anchor:end")
	}
	canvas.End()
}

// scaleX maps a genomic position to a pixel offset within bodyWidth.
func scaleX(pos, start, end, bodyWidth int) int {
	span := end - start
	if span < 1 {
		span = 1
	}
	return int(math.Round(float64(pos-start) / float64(span) * float64(bodyWidth)))
}
