package cohort

import (
	"testing"

	"ltrmap-core/model"
)

func fptr(v float64) *float64 { return &v }

func elemWithIdentity(id *float64) *model.RepeatRegion {
	return &model.RepeatRegion{ID: "e", Scaffold: "chr_1", Start: 1, End: 100, Strand: "+", Identity: id}
}

func TestParseIdentitySpecAuto(t *testing.T) {
	for _, spec := range []string{"auto", "default", "", "  AUTO "} {
		bins, err := ParseIdentitySpec(spec)
		if err != nil {
			t.Fatalf("spec %q: %v", spec, err)
		}
		if len(bins) != 2 || bins[0].Label != "all" || bins[1].Label != ">=0.980" {
			t.Fatalf("spec %q parsed to %+v", spec, bins)
		}
		if !bins[0].IsAll() || bins[1].Min == nil || *bins[1].Min != 0.98 || bins[1].Max != nil {
			t.Fatalf("spec %q bounds wrong: %+v", spec, bins)
		}
	}
}

func TestParseIdentitySpecBins(t *testing.T) {
	bins, err := ParseIdentitySpec("bins=0.90..0.94,>=0.94")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(bins) != 2 {
		t.Fatalf("want 2 bins, got %+v", bins)
	}
	if bins[0].Label != "0.900-0.940" || *bins[0].Min != 0.90 || *bins[0].Max != 0.94 {
		t.Fatalf("first bin wrong: %+v", bins[0])
	}
	if bins[1].Label != ">=0.940" || *bins[1].Min != 0.94 || bins[1].Max != nil {
		t.Fatalf("second bin wrong: %+v", bins[1])
	}
}

func TestParseIdentitySpecCustomLabel(t *testing.T) {
	bins, err := ParseIdentitySpec("young=0.98..1.0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(bins) != 1 || bins[0].Label != "young" || *bins[0].Max != 1.0 {
		t.Fatalf("custom label bin wrong: %+v", bins)
	}
}

func TestParseIdentitySpecErrors(t *testing.T) {
	for _, spec := range []string{
		">=abc",
		"0.9..xyz",
		"0.98..0.90", // max < min
		"nonsense",
		"bins=,,",
	} {
		if _, err := ParseIdentitySpec(spec); err == nil {
			t.Errorf("spec %q: expected error", spec)
		}
	}
}

func TestBinMatchingSpreadsElementsAcrossBins(t *testing.T) {
	bins, err := ParseIdentitySpec("bins=0.90..0.94,>=0.94")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	low, mid, high := elemWithIdentity(fptr(0.90)), elemWithIdentity(fptr(0.95)), elemWithIdentity(fptr(0.99))

	if !bins[0].Matches(low) || bins[1].Matches(low) {
		t.Fatalf("0.90 must fall in the first bin only")
	}
	for _, e := range []*model.RepeatRegion{mid, high} {
		if bins[0].Matches(e) || !bins[1].Matches(e) {
			t.Fatalf("identity %v must fall in >=0.94 only", *e.Identity)
		}
	}
}

func TestBoundedBinsExcludeMissingIdentity(t *testing.T) {
	missing := elemWithIdentity(nil)
	zero := fptr(0.0)
	unboundedLooking := Bin{Label: ">=0.000", Min: zero}
	if unboundedLooking.Matches(missing) {
		t.Fatalf("bounded bin must exclude missing identity, even >=0.0")
	}
}

func TestAllBinKeepsMissingIdentity(t *testing.T) {
	all := Bin{Label: "all"}
	if !all.Matches(elemWithIdentity(nil)) {
		t.Fatalf("the all bin must pass missing-identity elements")
	}
	if !all.Matches(elemWithIdentity(fptr(0.5))) {
		t.Fatalf("the all bin must pass everything")
	}
}

func TestBinSlug(t *testing.T) {
	cases := map[string]string{
		">=0.940":     "0_940",
		"0.900-0.940": "0_900_0_940",
		"all":         "all",
		"***":         "bin",
	}
	for label, want := range cases {
		if got := (Bin{Label: label}).Slug(); got != want {
			t.Errorf("Slug(%q) = %q, want %q", label, got, want)
		}
	}
}
