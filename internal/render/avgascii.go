// internal/render/avgascii.go
package render

import (
	"fmt"
	"math"
	"strings"

	"ltrmap-core/profile"
)

// AverageASCIIMap renders a cohort profile as a text postcard: meta line,
// indented stat table, the three-segment bar and an optional cumulative-length
// ruler plus Q25/Q75 footer.
func AverageASCIIMap(p *profile.Profile, width int, ruler, showQuantiles bool) string {
	if width < 20 {
		width = 20
	}
	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}
	line[0] = '|'
	line[width-1] = '|'

	// Running-offset fill: each segment starts where the previous ended so
	// rounding never leaves gaps.
	pos := 0.0
	fill := func(length float64, ch byte) {
		a := scaleLen(pos, p.TotalLen, width)
		pos += length
		b := scaleLen(pos, p.TotalLen, width)
		if b < a {
			a, b = b, a
		}
		for i := a; i <= b && i < width; i++ {
			line[i] = ch
		}
	}
	fill(p.LTR5Len, '=')
	fill(p.InternalLen, '-')
	fill(p.LTR3Len, '=')

	span := p.IdentityRangeText()
	meta := fmt.Sprintf("> AVG %s:%s  range:%s", p.GroupLabel, p.Label, span)
	var lines []string
	lines = append(lines, meta)
	for _, row := range profileTableRows(p, span) {
		lines = append(lines, "  "+row)
	}
	lines = append(lines, "", string(line))

	if !ruler {
		return strings.Join(lines, "\n") + "\n"
	}

	cumulative := 0.0
	var ticks []string
	for _, seg := range []struct {
		name string
		len  float64
	}{{"LTR5", p.LTR5Len}, {"INT", p.InternalLen}, {"LTR3", p.LTR3Len}} {
		cumulative += seg.len
		ticks = append(ticks, fmt.Sprintf("%s:%.0f", seg.name, cumulative))
	}
	lines = append(lines, strings.Join(ticks, " | "))
	if showQuantiles && p.Q25Len != nil && p.Q75Len != nil {
		lines = append(lines, fmt.Sprintf("Q25:%.0fbp  Q75:%.0fbp", *p.Q25Len, *p.Q75Len))
	}
	return strings.Join(lines, "\n") + "\n"
}

// profileTableRows builds the shared stat table used by the ASCII and SVG
// average postcards.
func profileTableRows(p *profile.Profile, identitySpan string) []string {
	var rows []string
	nLine := fmt.Sprintf("n: %d", p.NElements)
	if p.Note != "" {
		nLine += " (" + p.Note + ")"
	}
	rows = append(rows, nLine)
	rows = append(rows, fmt.Sprintf("median len: %.1f bp", p.TotalLen))
	if p.Q25Len != nil && p.Q75Len != nil {
		rows = append(rows, fmt.Sprintf("IQR: %.0f–%.0f bp", *p.Q25Len, *p.Q75Len))
	}
	rows = append(rows, fmt.Sprintf("identity mean:%s median:%s range:%s",
		na3(p.MeanIdentity), na3(p.MedianIdentity), identitySpan))
	rows = append(rows, fmt.Sprintf("LTR5 median: %.1f bp   LTR3 median: %.1f bp", p.LTR5Len, p.LTR3Len))
	rows = append(rows, fmt.Sprintf("Internal median: %.1f bp", p.InternalLen))
	rows = append(rows, p.StrandSummary)
	return rows
}

// scaleLen maps a cumulative length to a column index in [0, width).
func scaleLen(value, total float64, width int) int {
	if total <= 0 {
		return 0
	}
	idx := int(math.Round(value / total * float64(width-1)))
	if idx < 0 {
		return 0
	}
	if idx > width-1 {
		return width - 1
	}
	return idx
}

func na3(v *float64) string {
	if v == nil {
		return "NA"
	}
	return fmt.Sprintf("%.3f", *v)
}
