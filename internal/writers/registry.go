// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"ltrmap-core/cohort"
)

// AggregateWriter serializes a batch of aggregate rows in one format.
type AggregateWriter func(w io.Writer, rows []cohort.AggregateRow) error

// Aggregate writer registry (format -> handler). Writers register from
// internal/output init() blocks.
var aggregateWriters = map[string]AggregateWriter{}

// RegisterAggregate installs a writer for a format (last registration wins).
func RegisterAggregate(format string, fn AggregateWriter) { aggregateWriters[format] = fn }

// WriteAggregate dispatches rows to the writer registered for format.
func WriteAggregate(format string, w io.Writer, rows []cohort.AggregateRow) error {
	fn, ok := aggregateWriters[format]
	if !ok {
		return fmt.Errorf("unknown aggregate format %q (no writer registered)", format)
	}
	return fn(w, rows)
}
