package scaffold

import (
	"strings"
	"testing"
)

func TestReadLengthsFai(t *testing.T) {
	in := "chr_1\t30427671\t6\t79\t80\nchr_2\t19698289\t30812998\t79\t80\n"
	got, err := ReadLengths(strings.NewReader(in), "genome.fa.fai")
	if err != nil {
		t.Fatalf("ReadLengths: %v", err)
	}
	if got["chr_1"] != 30427671 || got["chr_2"] != 19698289 {
		t.Errorf("lengths = %v", got)
	}
}

func TestReadLengthsChromSizes(t *testing.T) {
	in := "# sizes\nchr_2\t1000000\n\nscaf_9 250\n"
	got, err := ReadLengths(strings.NewReader(in), "chrom.sizes")
	if err != nil {
		t.Fatalf("ReadLengths: %v", err)
	}
	if len(got) != 2 || got["chr_2"] != 1000000 || got["scaf_9"] != 250 {
		t.Errorf("lengths = %v", got)
	}
}

func TestReadLengthsBadRows(t *testing.T) {
	if _, err := ReadLengths(strings.NewReader("chr_2\n"), "x.fai"); err == nil || !strings.Contains(err.Error(), "x.fai:1") {
		t.Errorf("short row: err = %v", err)
	}
	if _, err := ReadLengths(strings.NewReader("chr_2\tlong\n"), "x.fai"); err == nil || !strings.Contains(err.Error(), "bad length") {
		t.Errorf("non-numeric length: err = %v", err)
	}
}
