// core/intervals/merge.go
package intervals

import "sort"

// Span is a 1-based inclusive genomic interval.
type Span struct {
	Start int
	End   int
}

// MergedCoverage returns the total bp covered after merging overlapping
// spans. Book-ended spans merge too: a span whose start is at most the
// running end + 1 extends the current run.
func MergedCoverage(spans []Span) int {
	if len(spans) == 0 {
		return 0
	}
	s := append([]Span(nil), spans...)
	sort.Slice(s, func(i, j int) bool {
		if s[i].Start != s[j].Start {
			return s[i].Start < s[j].Start
		}
		return s[i].End < s[j].End
	})

	total := 0
	curStart, curEnd := s[0].Start, s[0].End
	for _, sp := range s[1:] {
		if sp.Start <= curEnd+1 {
			if sp.End > curEnd {
				curEnd = sp.End
			}
			continue
		}
		total += curEnd - curStart + 1
		curStart, curEnd = sp.Start, sp.End
	}
	return total + curEnd - curStart + 1
}
