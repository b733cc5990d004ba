// core/gff3/assemble.go
package gff3

import (
	"sort"
	"strconv"
	"strings"

	"ltrmap-core/model"
)

// Elements assembles RepeatRegions in input order. max > 0 caps the output
// (debug aid); max <= 0 means no cap.
func (d *Document) Elements(max int) []*model.RepeatRegion {
	var out []*model.RepeatRegion
	for _, rid := range d.order {
		out = append(out, Assemble(rid, d.regions[rid], d.children[rid]))
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// Assemble normalizes one repeat_region row and its children.
func Assemble(rid string, parent Row, children []Row) *model.RepeatRegion {
	ltr5, ltr3 := pickLTRs(children)
	tsd5, tsd3 := pickTSDPositions(parent, children)
	return &model.RepeatRegion{
		ID:          rid,
		Scaffold:    parent.SeqID,
		Start:       parent.Start,
		End:         parent.End,
		Strand:      parent.Strand,
		Superfamily: classificationOf(children),
		Identity:    identityOf(children),
		Motif:       firstAttr(children, "motif"),
		TSD:         firstAttr(children, "tsd"),
		LTR5:        ltr5,
		LTR3:        ltr3,
		TSD5:        tsd5,
		TSD3:        tsd3,
		NChildren:   len(children),
	}
}

// classificationOf extracts the LTR superfamily from a Classification/Class
// attribute ("LTR/Gypsy" -> "Gypsy") or sniffs it from the feature type.
func classificationOf(children []Row) string {
	for _, child := range children {
		cls := child.Attrs.Get("classification")
		if cls == "" {
			cls = child.Attrs.Get("class")
		}
		if cls != "" {
			if i := strings.Index(cls, "LTR/"); i >= 0 {
				fam := cls[i+len("LTR/"):]
				if j := strings.Index(fam, ";"); j >= 0 {
					fam = fam[:j]
				}
				return fam
			}
		}
		typeLower := strings.ToLower(child.Type)
		if strings.Contains(typeLower, "gypsy") {
			return "Gypsy"
		}
		if strings.Contains(typeLower, "copia") {
			return "Copia"
		}
	}
	return ""
}

// identityOf returns the first parseable ltr_identity/ltrid/identity value.
func identityOf(children []Row) *float64 {
	for _, child := range children {
		var val string
		for _, key := range []string{"ltr_identity", "ltrid", "identity"} {
			if val = child.Attrs.Get(key); val != "" {
				break
			}
		}
		if val == "" {
			continue
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return &f
		}
	}
	return nil
}

func firstAttr(children []Row, key string) string {
	for _, child := range children {
		if val := child.Attrs.Get(key); val != "" {
			return val
		}
	}
	return ""
}

// pickLTRs picks the leftmost and rightmost long_terminal_repeat children as
// the 5' and 3' copies. A single LTR is treated as the 5' copy.
func pickLTRs(children []Row) (ltr5, ltr3 *model.LTRSpan) {
	var ltrs []Row
	for _, child := range children {
		if strings.ToLower(child.Type) == "long_terminal_repeat" {
			ltrs = append(ltrs, child)
		}
	}
	if len(ltrs) == 0 {
		return nil, nil
	}
	sort.Slice(ltrs, func(i, j int) bool {
		if ltrs[i].Start != ltrs[j].Start {
			return ltrs[i].Start < ltrs[j].Start
		}
		return ltrs[i].End < ltrs[j].End
	})
	first := &model.LTRSpan{Start: ltrs[0].Start, End: ltrs[0].End}
	if len(ltrs) == 1 {
		return first, nil
	}
	last := ltrs[len(ltrs)-1]
	return first, &model.LTRSpan{Start: last.Start, End: last.End}
}

// pickTSDPositions reduces target_site_duplication children to the boundary
// coordinates nearest the parent's ends.
func pickTSDPositions(parent Row, children []Row) (tsd5, tsd3 *int) {
	var tsds []Row
	for _, child := range children {
		if strings.ToLower(child.Type) == "target_site_duplication" {
			tsds = append(tsds, child)
		}
	}
	if len(tsds) == 0 {
		return nil, nil
	}
	left, right := tsds[0], tsds[0]
	for _, t := range tsds[1:] {
		if t.Start < left.Start {
			left = t
		}
		if t.End > right.End {
			right = t
		}
	}
	p5 := left.End
	if abs(left.Start-parent.Start) < abs(left.End-parent.Start) {
		p5 = left.Start
	}
	p3 := right.Start
	if abs(parent.End-right.End) < abs(parent.End-right.Start) {
		p3 = right.End
	}
	return &p5, &p3
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
