// internal/output/index.go
package output

import (
	"fmt"
	"io"

	"ltrmap-core/model"
)

// WriteIndexHTML writes a minimal gallery page embedding the per-element SVG
// files next to it (one <object> per element).
func WriteIndexHTML(w io.Writer, elements []*model.RepeatRegion, width, height int) error {
	if _, err := io.WriteString(w, "<html><head><meta charset='utf-8'><title>GFF3 LTR Maps</title></head><body>\n"); err != nil {
		return err
	}
	for _, e := range elements {
		if _, err := fmt.Fprintf(w, "<h3>%s:%s</h3>\n", e.Scaffold, e.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			"<object data='%s.svg' type='image/svg+xml' width='%d' height='%d'></object>\n",
			e.ID, width, height); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body></html>\n")
	return err
}
