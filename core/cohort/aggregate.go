// core/cohort/aggregate.go
package cohort

import (
	"math"
	"strconv"
	"strings"

	"ltrmap-core/intervals"
	"ltrmap-core/model"
	"ltrmap-core/stats"
)

// Config controls cohort summarization.
type Config struct {
	ScaffoldLengths  map[string]int // scaffold -> bp; enables density/coverage for scaffold groups
	SubstitutionRate float64        // subs/site/year; <= 0 disables age estimates
	TopK             int            // clamped to >= 1
	MinN             int            // clamped to >= 1; smaller nonzero cohorts get a LOW N note
}

// AggregateRow is one cohort summary, ready for serialization. Nil pointer
// fields mean "not computed", which serializes as an empty TSV cell or JSON
// null, never as zero.
type AggregateRow struct {
	GroupType          string   `json:"group_type"`
	Group              string   `json:"group"`
	NElements          int      `json:"n_elements"`
	PctWithBothTSD     float64  `json:"pct_with_both_tsd"`
	IdentityMean       *float64 `json:"ltr_identity_mean"`
	IdentityMedian     *float64 `json:"ltr_identity_median"`
	IdentityStdev      *float64 `json:"ltr_identity_stdev"`
	LTR5LenMean        *float64 `json:"ltr5_len_mean"`
	LTR5LenMedian      *float64 `json:"ltr5_len_median"`
	LTR5LenStdev       *float64 `json:"ltr5_len_stdev"`
	LTR3LenMean        *float64 `json:"ltr3_len_mean"`
	LTR3LenMedian      *float64 `json:"ltr3_len_median"`
	LTR3LenStdev       *float64 `json:"ltr3_len_stdev"`
	InternalLenMean    *float64 `json:"internal_len_mean"`
	InternalLenMedian  *float64 `json:"internal_len_median"`
	InternalLenStdev   *float64 `json:"internal_len_stdev"`
	LengthBPMean       *float64 `json:"length_bp_mean"`
	LengthBPMedian     *float64 `json:"length_bp_median"`
	LengthBPStdev      *float64 `json:"length_bp_stdev"`
	LTRAsymmetryMean   *float64 `json:"ltr_asymmetry_mean"`
	DensityPerMb       *float64 `json:"density_per_Mb"`
	CoveragePct        *float64 `json:"coverage_pct"`
	TopMotifs          string   `json:"top_motifs"`
	TopTSD             string   `json:"top_tsd"`
	ApproxAgeMedianMyr *float64 `json:"approx_age_median_Myr"`
	Notes              string   `json:"notes"`
}

// ComputeAggregates partitions elements per requested group type, summarizes
// every bucket, and returns rows sorted by (group_type, group). An empty
// element list or empty group-type list short-circuits to no rows.
func ComputeAggregates(elements []*model.RepeatRegion, groupTypes []string, cfg Config) ([]AggregateRow, error) {
	if len(elements) == 0 || len(groupTypes) == 0 {
		return nil, nil
	}
	buckets, err := Partition(elements, groupTypes)
	if err != nil {
		return nil, err
	}
	rows := make([]AggregateRow, 0, len(buckets))
	for _, key := range SortedKeys(buckets) {
		rows = append(rows, Summarize(key.Type, key.Name, buckets[key], cfg))
	}
	return rows, nil
}

// Summarize computes one AggregateRow from a cohort's member list. It never
// fails: missing optional data leaves fields nil, and malformed scaffold
// lengths silently disable density/coverage.
func Summarize(groupType, groupName string, elems []*model.RepeatRegion, cfg Config) AggregateRow {
	n := len(elems)
	topK := cfg.TopK
	if topK < 1 {
		topK = 1
	}
	minN := cfg.MinN
	if minN < 1 {
		minN = 1
	}

	row := AggregateRow{GroupType: groupType, Group: groupName, NElements: n}

	var identity, ltr5, ltr3, internal, lengths, asymmetries, ages []float64
	both := 0
	for _, e := range elems {
		if e.HasBothTSD() {
			both++
		}
		if e.Identity != nil {
			identity = append(identity, *e.Identity)
		}
		if l, ok := e.LTR5Len(); ok {
			ltr5 = append(ltr5, float64(l))
		}
		if l, ok := e.LTR3Len(); ok {
			ltr3 = append(ltr3, float64(l))
		}
		if l, ok := e.InternalLen(); ok {
			internal = append(internal, float64(l))
		}
		lengths = append(lengths, float64(e.LengthBP()))
		if a, ok := ltrAsymmetry(e); ok {
			asymmetries = append(asymmetries, a)
		}
		if age, ok := AgeMyr(e, cfg.SubstitutionRate); ok {
			ages = append(ages, age)
		}
	}
	if n > 0 {
		row.PctWithBothTSD = float64(both) / float64(n) * 100
	}

	row.IdentityMean, row.IdentityMedian, row.IdentityStdev = describe(identity)
	row.LTR5LenMean, row.LTR5LenMedian, row.LTR5LenStdev = describe(ltr5)
	row.LTR3LenMean, row.LTR3LenMedian, row.LTR3LenStdev = describe(ltr3)
	row.InternalLenMean, row.InternalLenMedian, row.InternalLenStdev = describe(internal)
	row.LengthBPMean, row.LengthBPMedian, row.LengthBPStdev = describe(lengths)

	if m, ok := stats.Mean(asymmetries); ok {
		row.LTRAsymmetryMean = &m
	}
	if len(ages) > 0 {
		med := stats.Median(ages)
		row.ApproxAgeMedianMyr = &med
	}

	if groupType == GroupScaffold && cfg.ScaffoldLengths != nil {
		if scaffoldLen, ok := cfg.ScaffoldLengths[groupName]; ok && scaffoldLen > 0 {
			density := float64(n) / (float64(scaffoldLen) / 1e6)
			row.DensityPerMb = &density
			spans := make([]intervals.Span, 0, n)
			for _, e := range elems {
				spans = append(spans, intervals.Span{Start: e.Start, End: e.End})
			}
			covered := intervals.MergedCoverage(spans)
			pct := math.Min(100, float64(covered)/float64(scaffoldLen)*100)
			row.CoveragePct = &pct
		}
	}

	var notes []string
	if n > 0 && n < minN {
		notes = append(notes, lowNNote(n))
	} else if n == 0 {
		notes = append(notes, "NO DATA")
	}

	motifs := make([]string, n)
	tsds := make([]string, n)
	for i, e := range elems {
		motifs[i] = e.Motif
		tsds[i] = e.TSD
	}
	var motifWarn, tsdWarn bool
	row.TopMotifs, motifWarn = TopCounts(motifs, topK, n)
	row.TopTSD, tsdWarn = TopCounts(tsds, topK, n)
	if motifWarn {
		notes = append(notes, "motif consensus <40%")
	}
	if tsdWarn {
		notes = append(notes, "TSD consensus <40%")
	}
	row.Notes = strings.Join(notes, "; ")
	return row
}

// AgeMyr converts LTR identity to an age in million years with the standard
// molecular clock T = (1-identity) / (2 * rate). Absent unless the rate is
// positive and identity is present within [0,1].
func AgeMyr(e *model.RepeatRegion, rate float64) (float64, bool) {
	if e.Identity == nil || rate <= 0 {
		return 0, false
	}
	id := *e.Identity
	if id < 0 || id > 1 {
		return 0, false
	}
	return (1 - id) / (2 * rate) / 1e6, true
}

// ltrAsymmetry is |len5-len3| / mean(len5,len3), defined only when both LTR
// spans exist and their mean length is positive.
func ltrAsymmetry(e *model.RepeatRegion) (float64, bool) {
	if e.LTR5 == nil || e.LTR3 == nil {
		return 0, false
	}
	l5 := float64(e.LTR5.Length())
	l3 := float64(e.LTR3.Length())
	denom := (l5 + l3) / 2
	if denom <= 0 {
		return 0, false
	}
	return math.Abs(l5-l3) / denom, true
}

func describe(values []float64) (mean, median, stdev *float64) {
	mu, med, sd, ok := stats.Describe(values)
	if !ok {
		return nil, nil, nil
	}
	return &mu, &med, &sd
}

func lowNNote(n int) string {
	return "LOW N (n=" + strconv.Itoa(n) + ")"
}
