package cohort

import (
	"testing"

	"ltrmap-core/model"
)

func TestPartitionIndependentGroupTypes(t *testing.T) {
	elems := []*model.RepeatRegion{
		{ID: "a", Scaffold: "chr_1", Start: 1, End: 10, Superfamily: "Gypsy"},
		{ID: "b", Scaffold: "chr_2", Start: 1, End: 10, Superfamily: "Copia"},
		{ID: "c", Scaffold: "chr_2", Start: 20, End: 30},
	}
	buckets, err := Partition(elems, []string{GroupGenome, GroupSuperfamily, GroupScaffold})
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	// genome(1) + superfamily(Gypsy, Copia, NA) + scaffold(chr_1, chr_2)
	if len(buckets) != 6 {
		t.Fatalf("want 6 buckets, got %d: %v", len(buckets), buckets)
	}
	if n := len(buckets[GroupKey{GroupGenome, "genome"}]); n != 3 {
		t.Fatalf("genome bucket size = %d", n)
	}
	if n := len(buckets[GroupKey{GroupSuperfamily, "NA"}]); n != 1 {
		t.Fatalf("NA superfamily bucket size = %d", n)
	}
	if n := len(buckets[GroupKey{GroupScaffold, "chr_2"}]); n != 2 {
		t.Fatalf("chr_2 bucket size = %d", n)
	}
}

func TestPartitionRejectsUnknownGroupType(t *testing.T) {
	if _, err := Partition(nil, []string{"strand"}); err == nil {
		t.Fatalf("expected error for unknown group type")
	}
}

func TestSortedKeysDeterministic(t *testing.T) {
	elems := []*model.RepeatRegion{
		{ID: "a", Scaffold: "chr_2", Start: 1, End: 10},
		{ID: "b", Scaffold: "chr_1", Start: 1, End: 10},
	}
	buckets, err := Partition(elems, []string{GroupScaffold, GroupGenome})
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	keys := SortedKeys(buckets)
	want := []GroupKey{
		{GroupGenome, "genome"},
		{GroupScaffold, "chr_1"},
		{GroupScaffold, "chr_2"},
	}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestComputeAggregatesEmptyInput(t *testing.T) {
	rows, err := ComputeAggregates(nil, []string{GroupGenome}, Config{})
	if err != nil || rows != nil {
		t.Fatalf("empty input must yield zero rows, got %v %v", rows, err)
	}
	rows, err = ComputeAggregates(scaffoldElems("chr_1"), nil, Config{})
	if err != nil || rows != nil {
		t.Fatalf("empty group-type list must yield zero rows, got %v %v", rows, err)
	}
}
