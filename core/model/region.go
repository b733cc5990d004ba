// core/model/region.go
package model

// LTRSpan is the coordinate span of one LTR copy (1-based, inclusive).
type LTRSpan struct {
	Start int
	End   int
}

func (s LTRSpan) Length() int { return s.End - s.Start + 1 }

// RepeatRegion is the normalized representation of one repeat_region block
// from an EDTA intact GFF3. Optional fields are pointers (numeric) or empty
// strings; absence is never encoded as zero.
type RepeatRegion struct {
	ID          string
	Scaffold    string
	Start       int // 1-based inclusive
	End         int
	Strand      string
	Superfamily string // "" when unclassified
	Identity    *float64
	Motif       string
	TSD         string
	LTR5        *LTRSpan
	LTR3        *LTRSpan
	TSD5        *int
	TSD3        *int
	NChildren   int // child rows seen during assembly (diagnostic)
}

func (r *RepeatRegion) LengthBP() int { return r.End - r.Start + 1 }

// InternalLen is the gap between the two LTR copies, floored at zero.
// ok is false when either LTR span is unknown.
func (r *RepeatRegion) InternalLen() (int, bool) {
	if r.LTR5 == nil || r.LTR3 == nil {
		return 0, false
	}
	n := r.LTR3.Start - r.LTR5.End - 1
	if n < 0 {
		n = 0
	}
	return n, true
}

func (r *RepeatRegion) LTR5Len() (int, bool) {
	if r.LTR5 == nil {
		return 0, false
	}
	return r.LTR5.Length(), true
}

func (r *RepeatRegion) LTR3Len() (int, bool) {
	if r.LTR3 == nil {
		return 0, false
	}
	return r.LTR3.Length(), true
}

func (r *RepeatRegion) HasBothTSD() bool { return r.TSD5 != nil && r.TSD3 != nil }
