// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestPositionalGFF3(t *testing.T) {
	o := mustParse(t, "in.gff3")
	if o.GFF3 != "in.gff3" || o.OutDir != "out" || o.IdentitySpec != "auto" {
		t.Errorf("defaults wrong: %+v", o)
	}
}

func TestErrorMissingInput(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--ascii"}); err == nil {
		t.Fatalf("expected error without input file")
	}
}

func TestErrorExtraPositionals(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"a.gff3", "b.gff3"}); err == nil {
		t.Fatalf("expected error for extra positionals")
	}
}

func TestErrorInvalidVisual(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--visual", "sparkline", "in.gff3"}); err == nil {
		t.Fatalf("expected error for bad --visual")
	}
}

func TestErrorInvalidPalette(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--palette", "neon", "in.gff3"}); err == nil {
		t.Fatalf("expected error for bad --palette")
	}
}

func TestErrorInvalidOut(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--out", "pdf", "in.gff3"}); err == nil {
		t.Fatalf("expected error for bad --out")
	}
}

func TestErrorZeroWorkers(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--workers", "0", "in.gff3"}); err == nil {
		t.Fatalf("expected error for --workers 0")
	}
}

func TestVersionSkipsPositionalCheck(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"--version"})
	if err != nil || !o.Version {
		t.Fatalf("version parse failed: %+v %v", o, err)
	}
}

func TestVisualChoicesAccepted(t *testing.T) {
	for _, v := range []string{VisualNone, VisualPostcard, VisualQuantiles} {
		o := mustParse(t, "--visual", v, "in.gff3")
		if o.Visual != v {
			t.Errorf("visual %q not kept", v)
		}
	}
}
