// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"ltrmap/internal/version"
)

// Aggregate visual modes.
const (
	VisualNone      = "none"
	VisualPostcard  = "postcard"
	VisualQuantiles = "postcard+quantiles"
)

// Options holds all CLI flags and the positional GFF3 path.
type Options struct {
	GFF3       string
	ConfigFile string

	// Artifact destinations
	OutDir        string
	SummaryPath   string
	BedPath       string
	AggregateTSV  string
	AggregateJSON string
	ManifestPath  string
	IndexHTML     bool

	// Per-element postcards
	ASCII   bool
	SVG     bool
	Width   int
	Height  int
	Palette string
	Ruler   bool
	Workers int

	// Aggregation
	Chrom            string
	IdentitySpec     string
	GroupTypes       string
	TopK             int
	MinN             int
	SubstitutionRate float64
	ScaffoldLengths  string
	MaxElements      int

	// Aggregate postcards
	Visual             string
	VisualOut          string
	PostcardASCIIWidth int
	PostcardSVGWidth   int
	PostcardSVGHeight  int

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: EDTA intact GFF3 -> ASCII/SVG postcards + identity-bin statistics

Version: %s

Usage: %s [flags] <input.gff3>
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
// Configuration validation happens here, before any cohort work begins.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.ConfigFile, "config", "", "optional config file with tool defaults [none]")

	fs.StringVar(&opt.OutDir, "outdir", "out", "output directory for map artifacts [out]")
	fs.StringVar(&opt.SummaryPath, "summary", "summary.tsv", "path to per-element summary TSV [summary.tsv]")
	fs.StringVar(&opt.BedPath, "bed", "", "also emit BED with repeat_region spans [none]")
	fs.StringVar(&opt.AggregateTSV, "aggregate-tsv", "", "path for identity-bin aggregate TSV [<outdir>/identity_bins.tsv]")
	fs.StringVar(&opt.AggregateJSON, "aggregate-json", "", "optional path for aggregate statistics JSON [none]")
	fs.StringVar(&opt.ManifestPath, "manifest", "", "optional path for a run-manifest JSON [none]")
	fs.BoolVar(&opt.IndexHTML, "index-html", false, "generate HTML index embedding SVGs [false]")

	fs.BoolVar(&opt.ASCII, "ascii", false, "emit per-element ASCII maps (*.txt) [false]")
	fs.BoolVar(&opt.SVG, "svg", false, "emit per-element SVG maps (*.svg) [false]")
	fs.IntVar(&opt.Width, "width", 800, "SVG canvas width (px) or ASCII columns [800]")
	fs.IntVar(&opt.Height, "height", 80, "SVG canvas height (px) [80]")
	fs.StringVar(&opt.Palette, "palette", "classic", "SVG palette: classic | mono | protanopia [classic]")
	fs.BoolVar(&opt.Ruler, "ruler", false, "add coordinate ruler to ASCII/SVG outputs [false]")
	fs.IntVar(&opt.Workers, "workers", 1, "parallel workers for per-element rendering [1]")

	fs.StringVar(&opt.Chrom, "chrom", "", "scope: genome | all | chrom:NAME | NAME [genome + each scaffold]")
	fs.StringVar(&opt.IdentitySpec, "identity", "auto", "identity bins (auto|all|>=X|label=X..Y|bins=0.90..0.94,>=0.94) [auto]")
	fs.StringVar(&opt.GroupTypes, "group-types", "", "extra aggregate partitions: comma list of genome,superfamily,scaffold [none]")
	fs.IntVar(&opt.TopK, "top-k", 3, "top-K motifs/TSDs to report [3]")
	fs.IntVar(&opt.MinN, "min-n", 20, "warn when cohorts contain fewer elements than this [20]")
	fs.Float64Var(&opt.SubstitutionRate, "substitution-rate", 0, "substitution rate (subs/site/year) for age estimates [unset]")
	fs.StringVar(&opt.ScaffoldLengths, "scaffold-lengths", "", "scaffold length file (.fai or chrom.sizes) for density/coverage [none]")
	fs.IntVar(&opt.MaxElements, "max-elements", 0, "stop after N elements (debug, 0 = all) [0]")

	fs.StringVar(&opt.Visual, "visual", VisualNone, "aggregate visual output: none | postcard | postcard+quantiles [none]")
	fs.StringVar(&opt.VisualOut, "out", "text", "aggregate postcard artifact types: text | text+svg [text]")
	fs.IntVar(&opt.PostcardASCIIWidth, "postcard-ascii-width", 100, "ASCII width for aggregate postcards [100]")
	fs.IntVar(&opt.PostcardSVGWidth, "postcard-svg-width", 800, "SVG width for aggregate postcards [800]")
	fs.IntVar(&opt.PostcardSVGHeight, "postcard-svg-height", 120, "SVG height for aggregate postcards [120]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress output [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	switch fs.NArg() {
	case 0:
		return opt, errors.New("an input GFF3 file is required")
	case 1:
		opt.GFF3 = fs.Arg(0)
	default:
		return opt, fmt.Errorf("unexpected extra arguments: %v", fs.Args()[1:])
	}
	return opt, opt.Validate()
}

// Validate checks flag values. It runs again after config-file defaults are
// merged in, so config files cannot smuggle invalid values past parsing.
func (o *Options) Validate() error {
	switch o.Visual {
	case VisualNone, VisualPostcard, VisualQuantiles:
	default:
		return fmt.Errorf("invalid --visual %q", o.Visual)
	}
	if o.VisualOut != "text" && o.VisualOut != "text+svg" {
		return fmt.Errorf("invalid --out %q", o.VisualOut)
	}
	switch o.Palette {
	case "classic", "mono", "protanopia":
	default:
		return fmt.Errorf("invalid --palette %q", o.Palette)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New("--width and --height must be > 0")
	}
	if o.Workers < 1 {
		return errors.New("--workers must be ≥ 1")
	}
	if o.MaxElements < 0 {
		return errors.New("--max-elements must be ≥ 0")
	}
	if o.PostcardASCIIWidth <= 0 || o.PostcardSVGWidth <= 0 || o.PostcardSVGHeight <= 0 {
		return errors.New("postcard dimensions must be > 0")
	}
	return nil
}
