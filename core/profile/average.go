// core/profile/average.go
package profile

import (
	"fmt"
	"math"
	"strings"

	"ltrmap-core/cohort"
	"ltrmap-core/model"
	"ltrmap-core/stats"
)

// reconcileEpsilon is the tolerance for the segment-sum invariant
// ltr5 + internal + ltr3 == total.
const reconcileEpsilon = 1e-6

// Profile is the synthetic "average element" of one cohort: median component
// lengths reconciled so the three segments tile the total exactly.
type Profile struct {
	Label          string
	GroupLabel     string
	NElements      int
	MeanIdentity   *float64
	MedianIdentity *float64
	LTR5Len        float64
	InternalLen    float64
	LTR3Len        float64
	TotalLen       float64
	IdentityMin    *float64
	IdentityMax    *float64
	HasRange       bool
	LowN           bool
	Note           string
	Q25Len         *float64
	Q75Len         *float64
	StrandSummary  string
}

// HasContent reports whether the profile describes something renderable.
func (p *Profile) HasContent() bool {
	return p != nil && p.NElements > 0 && p.TotalLen > 0
}

// IdentityRangeText is the "min–max" descriptor shown on postcards, with "-"
// for an open end and "all" when no range was applied.
func (p *Profile) IdentityRangeText() string {
	if !p.HasRange {
		return "all"
	}
	min, max := "-", "-"
	if p.IdentityMin != nil {
		min = fmt.Sprintf("%.3f", *p.IdentityMin)
	}
	if p.IdentityMax != nil {
		max = fmt.Sprintf("%.3f", *p.IdentityMax)
	}
	return min + "–" + max
}

// Params configures Build.
type Params struct {
	Label      string
	GroupLabel string
	Range      *cohort.Bin // optional identity filter, reapplied here: Build is self-sufficient
	MinN       int
}

// Build computes the average profile for a cohort, or nil when the filtered
// member set is empty or the reconciled total length is not positive.
func Build(elements []*model.RepeatRegion, p Params) *Profile {
	filtered := elements
	if p.Range != nil {
		filtered = make([]*model.RepeatRegion, 0, len(elements))
		for _, e := range elements {
			if p.Range.Matches(e) {
				filtered = append(filtered, e)
			}
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	var identities, ltr5s, ltr3s, internals, totals []float64
	for _, e := range filtered {
		if e.Identity != nil {
			identities = append(identities, *e.Identity)
		}
		if l, ok := e.LTR5Len(); ok {
			ltr5s = append(ltr5s, float64(l))
		}
		if l, ok := e.LTR3Len(); ok {
			ltr3s = append(ltr3s, float64(l))
		}
		if l, ok := e.InternalLen(); ok {
			internals = append(internals, float64(l))
		}
		totals = append(totals, float64(e.LengthBP()))
	}

	var ltr5Len, ltr3Len float64
	if len(ltr5s) > 0 {
		ltr5Len = stats.Median(ltr5s)
	}
	if len(ltr3s) > 0 {
		ltr3Len = stats.Median(ltr3s)
	}
	// totals is never empty here, but the component fallback mirrors the
	// internal-length fallback below
	totalLen := ltr5Len + ltr3Len
	if len(totals) > 0 {
		totalLen = stats.Median(totals)
	}
	var internalLen float64
	if len(internals) > 0 {
		internalLen = stats.Median(internals)
	} else {
		internalLen = math.Max(totalLen-ltr5Len-ltr3Len, 0)
	}

	if totalLen <= 0 {
		return nil
	}
	// Medians of parts don't sum to the median of the whole; push the
	// remainder into the internal segment so the bar tiles exactly.
	remainder := totalLen - (ltr5Len + internalLen + ltr3Len)
	if math.Abs(remainder) > reconcileEpsilon {
		internalLen = math.Max(0, internalLen+remainder)
	}

	prof := &Profile{
		Label:       p.Label,
		GroupLabel:  p.GroupLabel,
		NElements:   len(filtered),
		LTR5Len:     ltr5Len,
		InternalLen: internalLen,
		LTR3Len:     ltr3Len,
		TotalLen:    totalLen,
	}
	if p.Range != nil {
		prof.HasRange = true
		prof.IdentityMin = p.Range.Min
		prof.IdentityMax = p.Range.Max
	}
	if m, ok := stats.Mean(identities); ok {
		prof.MeanIdentity = &m
		med := stats.Median(identities)
		prof.MedianIdentity = &med
	}
	if q, ok := stats.Quantile(totals, 0.25); ok {
		prof.Q25Len = &q
	}
	if q, ok := stats.Quantile(totals, 0.75); ok {
		prof.Q75Len = &q
	}
	if len(filtered) < p.MinN {
		prof.LowN = true
		prof.Note = fmt.Sprintf("LOW N (n=%d)", len(filtered))
	}
	prof.StrandSummary = strandSummary(filtered)
	return prof
}

// strandSummary counts +/- strands (other strand values are ignored) and
// formats "strand +:<n> (<pct>%)/-:<n> (<pct>%)", dropping zero sides;
// "strand:NA" when neither occurs.
func strandSummary(elems []*model.RepeatRegion) string {
	plus, minus := 0, 0
	for _, e := range elems {
		switch e.Strand {
		case "+":
			plus++
		case "-":
			minus++
		}
	}
	total := len(elems)
	if total == 0 || (plus == 0 && minus == 0) {
		return "strand:NA"
	}
	var parts []string
	for _, side := range []struct {
		label string
		count int
	}{{"+", plus}, {"-", minus}} {
		if side.count == 0 {
			continue
		}
		pct := float64(side.count) / float64(total) * 100
		parts = append(parts, fmt.Sprintf("%s:%d (%.0f%%)", side.label, side.count, pct))
	}
	return "strand " + strings.Join(parts, "/")
}
