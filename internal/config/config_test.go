package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"ltrmap/internal/cli"
)

func writeTempConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTempConfig(t, "ltrmap.yaml", `
identity: "bins=0.90..0.94,>=0.94"
top_k: 5
min_n: 2
palette: mono
substitution_rate: 1.3e-8
visual: postcard
out: text+svg
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Identity != "bins=0.90..0.94,>=0.94" {
		t.Errorf("identity = %q", f.Identity)
	}
	if f.TopK != 5 || f.MinN != 2 {
		t.Errorf("top_k/min_n = %d/%d", f.TopK, f.MinN)
	}
	if f.SubstitutionRate != 1.3e-8 {
		t.Errorf("substitution_rate = %g", f.SubstitutionRate)
	}
}

func TestLoadEnvOverridesAbsentKeys(t *testing.T) {
	t.Setenv("LTRMAP_MIN_N", "7")
	t.Setenv("LTRMAP_PALETTE", "protanopia")
	path := writeTempConfig(t, "ltrmap.yaml", "top_k: 4\n")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.MinN != 7 {
		t.Errorf("min_n from env = %d, want 7", f.MinN)
	}
	if f.Palette != "protanopia" {
		t.Errorf("palette from env = %q", f.Palette)
	}
	if f.TopK != 4 {
		t.Errorf("file key disturbed: top_k = %d", f.TopK)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	fs := cli.NewFlagSet("ltrmap")
	fs.SetOutput(io.Discard)
	opt, err := cli.ParseArgs(fs, []string{"--top-k", "7", "in.gff3"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	f := &File{TopK: 5, MinN: 2, Palette: "mono"}
	Merge(&opt, f, fs)

	if opt.TopK != 7 {
		t.Errorf("explicit --top-k overridden: got %d", opt.TopK)
	}
	if opt.MinN != 2 {
		t.Errorf("min_n not merged: got %d", opt.MinN)
	}
	if opt.Palette != "mono" {
		t.Errorf("palette not merged: got %q", opt.Palette)
	}
}

func TestMergeIgnoresZeroValues(t *testing.T) {
	fs := cli.NewFlagSet("ltrmap")
	fs.SetOutput(io.Discard)
	opt, err := cli.ParseArgs(fs, []string{"in.gff3"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	Merge(&opt, &File{}, fs)
	if opt.TopK != 3 || opt.MinN != 20 || opt.Palette != "classic" {
		t.Errorf("defaults disturbed: top-k=%d min-n=%d palette=%q", opt.TopK, opt.MinN, opt.Palette)
	}
}
