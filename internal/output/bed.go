// internal/output/bed.go
package output

import (
	"fmt"
	"io"

	"ltrmap-core/model"
)

// WriteBED writes repeat_region spans as BED6 rows. GFF3 coordinates are
// 1-based inclusive; BED starts are 0-based half-open.
func WriteBED(w io.Writer, elements []*model.RepeatRegion) error {
	for _, e := range elements {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t0\t%s\n",
			e.Scaffold, e.Start-1, e.End, e.ID, e.Strand); err != nil {
			return err
		}
	}
	return nil
}
