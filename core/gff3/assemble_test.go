package gff3

import (
	"strings"
	"testing"
)

func TestAssembleFullElement(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleGFF), "sample.gff3")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	elems := doc.Elements(0)
	if len(elems) != 2 {
		t.Fatalf("elements = %d", len(elems))
	}

	rr := elems[0]
	if rr.ID != "rr_high_1" || rr.Scaffold != "chr_2" || rr.Strand != "+" {
		t.Fatalf("identity fields wrong: %+v", rr)
	}
	if rr.Superfamily != "Gypsy" {
		t.Fatalf("superfamily = %q", rr.Superfamily)
	}
	if rr.Identity == nil || *rr.Identity != 0.979 {
		t.Fatalf("identity = %v", rr.Identity)
	}
	if l, _ := rr.LTR5Len(); l != 201 {
		t.Fatalf("ltr5 len = %d, want 201", l)
	}
	if l, _ := rr.LTR3Len(); l != 200 {
		t.Fatalf("ltr3 len = %d, want 200", l)
	}
	if n, ok := rr.InternalLen(); !ok || n != 600 {
		t.Fatalf("internal len = %d,%v, want 600", n, ok)
	}
	if rr.Motif != "TGCA" || rr.TSD != "AATAT" {
		t.Fatalf("motif/tsd = %q/%q", rr.Motif, rr.TSD)
	}
	if !rr.HasBothTSD() {
		t.Fatalf("expected both TSD positions, got %+v", rr)
	}
	if rr.TSD5 == nil || *rr.TSD5 != 1000 || rr.TSD3 == nil || *rr.TSD3 != 2002 {
		t.Fatalf("tsd positions = %v/%v", rr.TSD5, rr.TSD3)
	}
	if rr.NChildren != 5 {
		t.Fatalf("n children = %d", rr.NChildren)
	}
}

func TestAssembleSingleLTRIsFivePrime(t *testing.T) {
	gff := "chr_1\tEDTA\trepeat_region\t1\t500\t.\t+\t.\tID=r1\n" +
		"chr_1\tEDTA\tlong_terminal_repeat\t1\t100\t.\t+\t.\tParent=r1\n"
	doc, err := Read(strings.NewReader(gff), "one.gff3")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rr := doc.Elements(0)[0]
	if rr.LTR5 == nil || rr.LTR3 != nil {
		t.Fatalf("single LTR must become the 5' copy: %+v", rr)
	}
	if _, ok := rr.InternalLen(); ok {
		t.Fatalf("internal length must be unknown with a single LTR")
	}
}

func TestAssembleClassificationSniffing(t *testing.T) {
	gff := "chr_1\tEDTA\trepeat_region\t1\t500\t.\t+\t.\tID=r1\n" +
		"chr_1\tEDTA\tCopia_LTR_retrotransposon\t10\t490\t.\t+\t.\tParent=r1\n"
	doc, err := Read(strings.NewReader(gff), "copia.gff3")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if fam := doc.Elements(0)[0].Superfamily; fam != "Copia" {
		t.Fatalf("superfamily = %q, want Copia", fam)
	}
}

func TestAssembleUnparsableIdentitySkipped(t *testing.T) {
	gff := "chr_1\tEDTA\trepeat_region\t1\t500\t.\t+\t.\tID=r1\n" +
		"chr_1\tEDTA\tlong_terminal_repeat\t1\t100\t.\t+\t.\tParent=r1;ltr_identity=NA\n" +
		"chr_1\tEDTA\tlong_terminal_repeat\t400\t500\t.\t+\t.\tParent=r1;identity=0.88\n"
	doc, err := Read(strings.NewReader(gff), "id.gff3")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rr := doc.Elements(0)[0]
	if rr.Identity == nil || *rr.Identity != 0.88 {
		t.Fatalf("identity = %v, want fallback 0.88", rr.Identity)
	}
}

func TestElementsMaxCap(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleGFF), "sample.gff3")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := len(doc.Elements(1)); n != 1 {
		t.Fatalf("capped elements = %d, want 1", n)
	}
}
