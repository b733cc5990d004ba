// internal/console/table.go
//
// Progress lines and the identity-bin table printed to the terminal.
package console

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"ltrmap-core/cohort"
)

// Logger writes "[ltrmap]"-prefixed progress lines; Quiet suppresses them.
type Logger struct {
	W     io.Writer
	Quiet bool
}

// Progressf prints one progress line unless the logger is quiet.
func (l *Logger) Progressf(format string, args ...any) {
	if l == nil || l.Quiet || l.W == nil {
		return
	}
	fmt.Fprintf(l.W, "[ltrmap] "+format+"\n", args...)
}

// PrintIdentityTable prints a compact per-cohort table. Notes cells are
// highlighted so LOW N and consensus warnings stand out.
func (l *Logger) PrintIdentityTable(rows []cohort.AggregateRow) {
	if l == nil || l.Quiet || l.W == nil || len(rows) == 0 {
		return
	}
	warn := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintln(l.W, "[ltrmap] Identity bins:")
	fmt.Fprintln(l.W, strings.Join([]string{"group", "n", "median_len", "median_id", "top_motifs", "notes"}, "\t"))
	for _, row := range rows {
		motifs := row.TopMotifs
		if motifs == "" {
			motifs = "NA"
		}
		notes := row.Notes
		if notes != "" {
			notes = warn(notes)
		}
		cells := []string{
			row.Group,
			strconv.Itoa(row.NElements),
			safeFloat(row.LengthBPMedian),
			safeFloat(row.IdentityMedian),
			motifs,
			notes,
		}
		fmt.Fprintln(l.W, strings.Join(cells, "\t"))
	}
}

// safeFloat shows whole-unit values with one decimal and sub-unit values
// (identities) with three.
func safeFloat(v *float64) string {
	if v == nil {
		return "NA"
	}
	if math.Abs(*v) >= 1 {
		return fmt.Sprintf("%.1f", *v)
	}
	return fmt.Sprintf("%.3f", *v)
}
