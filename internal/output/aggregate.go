// internal/output/aggregate.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ltrmap-core/cohort"
	"ltrmap/internal/jsonutil"
	"ltrmap/internal/writers"
)

// AggregateColumns is the fixed serialization order for aggregate rows.
var AggregateColumns = []string{
	"group_type",
	"group",
	"n_elements",
	"pct_with_both_tsd",
	"ltr_identity_mean",
	"ltr_identity_median",
	"ltr_identity_stdev",
	"ltr5_len_mean",
	"ltr5_len_median",
	"ltr5_len_stdev",
	"ltr3_len_mean",
	"ltr3_len_median",
	"ltr3_len_stdev",
	"internal_len_mean",
	"internal_len_median",
	"internal_len_stdev",
	"length_bp_mean",
	"length_bp_median",
	"length_bp_stdev",
	"ltr_asymmetry_mean",
	"density_per_Mb",
	"coverage_pct",
	"top_motifs",
	"top_tsd",
	"approx_age_median_Myr",
	"notes",
}

func init() {
	writers.RegisterAggregate("text", WriteAggregateTSV)
	writers.RegisterAggregate("json", WriteAggregateJSON)
}

// WriteAggregateTSV writes the header plus one row per cohort, columns in
// AggregateColumns order. Floats render to 6 significant digits; absent
// values render as empty cells.
func WriteAggregateTSV(w io.Writer, rows []cohort.AggregateRow) error {
	if _, err := io.WriteString(w, strings.Join(AggregateColumns, "\t")+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		cells := []string{
			row.GroupType,
			row.Group,
			strconv.Itoa(row.NElements),
			FormatFloat(row.PctWithBothTSD),
			FormatOptFloat(row.IdentityMean),
			FormatOptFloat(row.IdentityMedian),
			FormatOptFloat(row.IdentityStdev),
			FormatOptFloat(row.LTR5LenMean),
			FormatOptFloat(row.LTR5LenMedian),
			FormatOptFloat(row.LTR5LenStdev),
			FormatOptFloat(row.LTR3LenMean),
			FormatOptFloat(row.LTR3LenMedian),
			FormatOptFloat(row.LTR3LenStdev),
			FormatOptFloat(row.InternalLenMean),
			FormatOptFloat(row.InternalLenMedian),
			FormatOptFloat(row.InternalLenStdev),
			FormatOptFloat(row.LengthBPMean),
			FormatOptFloat(row.LengthBPMedian),
			FormatOptFloat(row.LengthBPStdev),
			FormatOptFloat(row.LTRAsymmetryMean),
			FormatOptFloat(row.DensityPerMb),
			FormatOptFloat(row.CoveragePct),
			row.TopMotifs,
			row.TopTSD,
			FormatOptFloat(row.ApproxAgeMedianMyr),
			row.Notes,
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteAggregateJSON writes rows as an indented JSON array; absent values
// serialize as null.
func WriteAggregateJSON(w io.Writer, rows []cohort.AggregateRow) error {
	if rows == nil {
		rows = []cohort.AggregateRow{}
	}
	return jsonutil.EncodePretty(w, rows)
}

// FormatFloat renders a float to 6 significant digits.
func FormatFloat(v float64) string { return fmt.Sprintf("%.6g", v) }

// FormatOptFloat renders an optional float; absent is the empty string.
func FormatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}
