// internal/render/avgsvg.go
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"ltrmap-core/profile"
)

// AverageSVGMap renders a cohort profile to w: header, stat table, the
// three-segment bar with per-segment length labels and optional dashed
// Q25/Q75 markers. The canvas grows vertically when the table needs room.
func AverageSVGMap(w io.Writer, p *profile.Profile, width, height int, paletteName string, showQuantiles bool) {
	colors := PaletteByName(paletteName)
	const (
		pad             = 30
		ltrHeight       = 30
		internalHeight  = 18
		headerY         = 20
		tableLineHeight = 16
	)
	identitySpan := p.IdentityRangeText()
	tableRows := profileTableRows(p, identitySpan)

	tableStartY := headerY + 20
	bodyTop := tableStartY + len(tableRows)*tableLineHeight + 20
	required := bodyTop + ltrHeight + 50
	canvasHeight := height
	if required > canvasHeight {
		canvasHeight = required
	}
	bodyWidth := width - 2*pad
	midY := bodyTop + ltrHeight/2

	canvas := svg.New(w)
	canvas.Start(width, canvasHeight)
	canvas.Rect(0, 0, width, canvasHeight, "fill:"+colors.BG)
	canvas.Text(pad, headerY, fmt.Sprintf("AVG %s:%s", p.GroupLabel, p.Label),
		"font-size:16px;fill:"+colors.Text)
	for i, row := range tableRows {
		canvas.Text(pad, tableStartY+i*tableLineHeight, row, "font-size:12px;fill:"+colors.Text)
	}

	pos := 0.0
	draw := func(length float64, color string, boxHeight int, labelColor string, labelOffset int) {
		start := pos
		pos += length
		x1 := pad + scaleAvgX(start, p.TotalLen, bodyWidth)
		x2 := pad + scaleAvgX(pos, p.TotalLen, bodyWidth)
		rw := x2 - x1
		if rw < 1 {
			rw = 1
		}
		canvas.Roundrect(x1, midY-boxHeight/2, rw, boxHeight, 6, 6, "fill:"+color)
		label := fmt.Sprintf("%.0fbp", length)
		canvas.Text((x1+x2)/2, midY+labelOffset, label,
			"font-size:10px;fill:"+labelColor+";text-anchor:middle;dominant-baseline:middle")
	}
	draw(p.LTR5Len, colors.LTR, ltrHeight, "#FFFFFF", 0)
	draw(p.InternalLen, colors.Internal, internalHeight, colors.Text, -ltrHeight)
	draw(p.LTR3Len, colors.LTR, ltrHeight, "#FFFFFF", 0)

	if showQuantiles && p.Q25Len != nil && p.Q75Len != nil {
		for _, q := range []struct {
			label string
			value float64
		}{{"Q25", *p.Q25Len}, {"Q75", *p.Q75Len}} {
			v := q.value
			if v < 0 {
				v = 0
			}
			if v > p.TotalLen {
				v = p.TotalLen
			}
			x := pad + scaleAvgX(v, p.TotalLen, bodyWidth)
			canvas.Line(x, midY-ltrHeight, x, midY+ltrHeight,
				"stroke:"+colors.TSD+";stroke-width:2;stroke-dasharray:4,2")
			canvas.Text(x+4, midY-ltrHeight-4, q.label, "font-size:10px;fill:"+colors.Text)
		}
	}
	canvas.End()
}

func scaleAvgX(value, total float64, bodyWidth int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(value / total * float64(bodyWidth)))
}
