// internal/output/summary.go
package output

import (
	"io"
	"strconv"
	"strings"

	"ltrmap-core/model"
)

// SummaryColumns is the per-element summary TSV header.
var SummaryColumns = []string{
	"element_id",
	"scaffold",
	"start",
	"end",
	"strand",
	"superfamily",
	"ltr_identity",
	"motif",
	"tsd",
	"length_bp",
	"ltr5_len",
	"ltr3_len",
	"internal_len",
	"has_both_tsd",
	"n_children_warn",
}

// WriteSummaryTSV writes one row per element in input order.
func WriteSummaryTSV(w io.Writer, elements []*model.RepeatRegion) error {
	if _, err := io.WriteString(w, strings.Join(SummaryColumns, "\t")+"\n"); err != nil {
		return err
	}
	for _, e := range elements {
		cells := []string{
			e.ID,
			e.Scaffold,
			strconv.Itoa(e.Start),
			strconv.Itoa(e.End),
			e.Strand,
			e.Superfamily,
			identityCell(e.Identity),
			e.Motif,
			e.TSD,
			strconv.Itoa(e.LengthBP()),
			optLenCell(e.LTR5Len()),
			optLenCell(e.LTR3Len()),
			optLenCell(e.InternalLen()),
			boolCell(e.HasBothTSD()),
			strconv.Itoa(e.NChildren),
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func identityCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func optLenCell(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

func boolCell(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
