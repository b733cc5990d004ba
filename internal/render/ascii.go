// internal/render/ascii.go
//
// Plain-text postcards. One element renders to a meta line plus a fixed-width
// bar: '|' at both ends, '=' for LTR spans, '-' for the internal region and
// 'T'/'D' single-column 5'/3' TSD marks.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ltrmap-core/model"
)

// ASCIIMap renders one element. width is clamped to at least 10 columns; the
// optional ruler line carries the genomic start/end labels.
func ASCIIMap(e *model.RepeatRegion, width int, ruler bool) string {
	if width < 10 {
		width = 10
	}
	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}
	line[0] = '|'
	line[width-1] = '|'

	if e.LTR5 != nil {
		fillSpan(line, e, e.LTR5.Start, e.LTR5.End, '=')
	}
	if e.LTR3 != nil {
		fillSpan(line, e, e.LTR3.Start, e.LTR3.End, '=')
	}
	if e.LTR5 != nil && e.LTR3 != nil && e.LTR3.Start-e.LTR5.End > 1 {
		fillSpan(line, e, e.LTR5.End+1, e.LTR3.Start-1, '-')
	}
	if e.TSD5 != nil {
		line[scalePos(*e.TSD5, e.Start, e.End, width)] = 'T'
	}
	if e.TSD3 != nil {
		line[scalePos(*e.TSD3, e.Start, e.End, width)] = 'D'
	}

	meta := fmt.Sprintf("> %s:%s  fam:%s  strand:%s  span:%d-%d  ltr_id:%s  motif:%s  tsd:%s",
		e.Scaffold, e.ID, orNA(e.Superfamily), e.Strand, e.Start, e.End,
		identityText(e.Identity), orNA(e.Motif), orNA(e.TSD))

	if !ruler {
		return meta + "\n" + string(line) + "\n"
	}
	startLabel := strconv.Itoa(e.Start)
	endLabel := strconv.Itoa(e.End)
	pad := width - len(startLabel) - len(endLabel)
	if pad < 0 {
		pad = 0
	}
	rulerLine := startLabel + strings.Repeat(" ", pad) + endLabel
	return meta + "\n" + string(line) + "\n" + rulerLine + "\n"
}

func fillSpan(line []byte, e *model.RepeatRegion, start, end int, ch byte) {
	width := len(line)
	a := scalePos(start, e.Start, e.End, width)
	b := scalePos(end, e.Start, e.End, width)
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		line[i] = ch
	}
}

// scalePos maps a genomic position to a column index in [0, width).
func scalePos(pos, start, end, width int) int {
	span := end - start
	if span < 1 {
		span = 1
	}
	rel := float64(pos-start) / float64(span)
	idx := int(math.Round(rel * float64(width-1)))
	if idx < 0 {
		return 0
	}
	if idx > width-1 {
		return width - 1
	}
	return idx
}

func orNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}

func identityText(v *float64) string {
	if v == nil {
		return "NA"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
