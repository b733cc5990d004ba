// core/cohort/scopes.go
package cohort

import (
	"fmt"
	"sort"
	"strings"

	"ltrmap-core/model"
)

// Scope restricts a cohort to the whole genome or to one scaffold.
// A zero Scope is genome-wide.
type Scope struct {
	Scaffold string // "" means genome-wide
}

func (s Scope) Label() string {
	if s.Scaffold == "" {
		return "genome"
	}
	return s.Scaffold
}

// Matches is an exact, case-sensitive scaffold comparison for scaffold
// scopes; the genome scope matches everything.
func (s Scope) Matches(r *model.RepeatRegion) bool {
	return s.Scaffold == "" || r.Scaffold == s.Scaffold
}

// ParseScopes resolves the scope argument against the loaded elements:
//
//	"" / "default" / "auto" / "all"  -> genome plus every scaffold seen
//	"genome"                         -> genome only
//	"chrom:NAME"                     -> that scaffold (chrom:all as above)
//	"NAME"                           -> that scaffold
func ParseScopes(arg string, elements []*model.RepeatRegion) ([]Scope, error) {
	raw := strings.TrimSpace(arg)
	lowered := strings.ToLower(raw)
	switch lowered {
	case "", "default", "auto", "all":
		scopes := []Scope{{}}
		for _, name := range scaffoldNames(elements) {
			scopes = append(scopes, Scope{Scaffold: name})
		}
		return scopes, nil
	case "genome":
		return []Scope{{}}, nil
	}
	if strings.HasPrefix(lowered, "chrom:") {
		name := strings.TrimSpace(raw[len("chrom:"):])
		if name == "" {
			return nil, fmt.Errorf("chrom scope requires a name (e.g., chrom:chr_2)")
		}
		if strings.ToLower(name) == "all" {
			return ParseScopes("all", elements)
		}
		return []Scope{{Scaffold: name}}, nil
	}
	return []Scope{{Scaffold: raw}}, nil
}

func scaffoldNames(elements []*model.RepeatRegion) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range elements {
		if _, ok := seen[e.Scaffold]; ok {
			continue
		}
		seen[e.Scaffold] = struct{}{}
		names = append(names, e.Scaffold)
	}
	sort.Strings(names)
	return names
}
