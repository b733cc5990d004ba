// core/cohort/group.go
package cohort

import (
	"fmt"
	"sort"

	"ltrmap-core/model"
)

// Group types. Each one is an independent partition of the full element set;
// requesting several yields the union of their buckets, not a cross-product.
const (
	GroupGenome      = "genome"
	GroupSuperfamily = "superfamily"
	GroupScaffold    = "scaffold"
)

// GroupKey identifies one bucket of one group-type partition.
type GroupKey struct {
	Type string
	Name string
}

// ValidateGroupTypes rejects unknown group types up front, before any cohort
// computation runs.
func ValidateGroupTypes(groupTypes []string) error {
	for _, gt := range groupTypes {
		switch gt {
		case GroupGenome, GroupSuperfamily, GroupScaffold:
		default:
			return fmt.Errorf("unknown group type %q (want genome, superfamily or scaffold)", gt)
		}
	}
	return nil
}

// Partition buckets every element once per requested group type.
// Unclassified superfamilies bucket under "NA".
func Partition(elements []*model.RepeatRegion, groupTypes []string) (map[GroupKey][]*model.RepeatRegion, error) {
	if err := ValidateGroupTypes(groupTypes); err != nil {
		return nil, err
	}
	buckets := make(map[GroupKey][]*model.RepeatRegion)
	for _, e := range elements {
		for _, gt := range groupTypes {
			key := GroupKey{Type: gt, Name: groupName(e, gt)}
			buckets[key] = append(buckets[key], e)
		}
	}
	return buckets, nil
}

func groupName(e *model.RepeatRegion, groupType string) string {
	switch groupType {
	case GroupSuperfamily:
		if e.Superfamily == "" {
			return "NA"
		}
		return e.Superfamily
	case GroupScaffold:
		return e.Scaffold
	default:
		return GroupGenome
	}
}

// SortedKeys orders bucket keys lexicographically by (type, name) for
// deterministic output.
func SortedKeys(buckets map[GroupKey][]*model.RepeatRegion) []GroupKey {
	keys := make([]GroupKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}
