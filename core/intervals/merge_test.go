package intervals

import "testing"

func TestMergedCoverage(t *testing.T) {
	cases := []struct {
		name  string
		spans []Span
		want  int
	}{
		{"empty", nil, 0},
		{"single", []Span{{1, 10}}, 10},
		{"disjoint", []Span{{1, 10}, {21, 30}}, 20},
		{"overlap", []Span{{1, 10}, {5, 20}}, 20},
		{"contained", []Span{{1, 100}, {10, 20}}, 100},
		{"adjacent merges", []Span{{1, 10}, {11, 20}}, 20},
		{"one gap apart stays split", []Span{{1, 10}, {12, 20}}, 19},
		{"unsorted input", []Span{{21, 30}, {1, 10}, {8, 22}}, 30},
	}
	for _, c := range cases {
		if got := MergedCoverage(c.spans); got != c.want {
			t.Errorf("%s: MergedCoverage = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestMergedCoverageDoesNotMutateInput(t *testing.T) {
	spans := []Span{{21, 30}, {1, 10}}
	_ = MergedCoverage(spans)
	if spans[0].Start != 21 {
		t.Fatalf("input mutated: %v", spans)
	}
}
