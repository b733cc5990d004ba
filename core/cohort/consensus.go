// core/cohort/consensus.go
package cohort

import (
	"fmt"
	"sort"
	"strings"
)

// lowConsensusShare is the fraction of the cohort the single most frequent
// value must reach; below it the output is marked "(no single consensus)".
const lowConsensusShare = 0.4

// TopCounts tallies non-empty values and formats the limit most frequent as
// "value (count, pct%)" joined by ", ". Frequency ties break on ascending
// value. warn reports that the most frequent value covers under 40% of
// total; the marker text is appended in that case.
func TopCounts(values []string, limit, total int) (text string, warn bool) {
	counts := make(map[string]int)
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}

	type entry struct {
		value string
		count int
	}
	ordered := make([]entry, 0, len(counts))
	for v, c := range counts {
		ordered = append(ordered, entry{v, c})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].value < ordered[j].value
	})

	top := ordered
	if limit < len(top) {
		top = top[:limit]
	}
	parts := make([]string, 0, len(top))
	for _, e := range top {
		perc := 0.0
		if total > 0 {
			perc = float64(e.count) / float64(total)
		}
		parts = append(parts, fmt.Sprintf("%s (%d, %.0f%%)", e.value, e.count, perc*100))
	}
	if total > 0 && float64(ordered[0].count)/float64(total) < lowConsensusShare {
		warn = true
	}
	text = strings.Join(parts, ", ")
	if warn && text != "" {
		text += " (no single consensus)"
	}
	return text, warn
}
