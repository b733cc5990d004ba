package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := Run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "ltrmap version ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := Run([]string{"-h"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("help output = %q", out.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := Run([]string{"--no-such-flag"}, &out, &errBuf); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if errBuf.Len() == 0 {
		t.Error("expected error on stderr")
	}
}

func TestRunMissingInputFile(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run([]string{
		filepath.Join(t.TempDir(), "absent.gff3"),
		"--outdir", t.TempDir(),
	}, &out, &errBuf)
	if code != 3 {
		t.Fatalf("exit %d, want 3", code)
	}
}

func TestRunConfigFileMerge(t *testing.T) {
	dir := t.TempDir()
	gff := filepath.Join(dir, "in.gff3")
	gffBody := "chr_9\tEDTA\trepeat_region\t1\t900\t.\t+\t.\tID=rr_1\n" +
		"chr_9\tEDTA\tlong_terminal_repeat\t1\t100\t.\t+\t.\tParent=rr_1;ltr_identity=0.93\n" +
		"chr_9\tEDTA\tlong_terminal_repeat\t801\t900\t.\t+\t.\tParent=rr_1\n"
	if err := os.WriteFile(gff, []byte(gffBody), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "ltrmap.yaml")
	if err := os.WriteFile(cfgPath, []byte("identity: \">=0.90\"\nmin_n: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outdir := filepath.Join(dir, "out")
	var out, errBuf bytes.Buffer
	code := Run([]string{
		gff,
		"--config", cfgPath,
		"--outdir", outdir,
		"--summary", filepath.Join(outdir, "summary.tsv"),
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	data, err := os.ReadFile(filepath.Join(outdir, "identity_bins.tsv"))
	if err != nil {
		t.Fatalf("identity bins: %v", err)
	}
	if !strings.Contains(string(data), ">=0.900") {
		t.Errorf("config identity spec not applied:\n%s", data)
	}
}

func TestRunBadConfigFile(t *testing.T) {
	gff := filepath.Join(t.TempDir(), "in.gff3")
	if err := os.WriteFile(gff, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	var out, errBuf bytes.Buffer
	code := Run([]string{gff, "--config", filepath.Join(t.TempDir(), "missing.yaml")}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
