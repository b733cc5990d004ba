// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ltrmap-core/cohort"
	"ltrmap-core/gff3"
	"ltrmap-core/model"
	"ltrmap-core/profile"
	appconfig "ltrmap/internal/config"

	"ltrmap/internal/cli"
	"ltrmap/internal/console"
	"ltrmap/internal/manifest"
	"ltrmap/internal/output"
	"ltrmap/internal/pipeline"
	"ltrmap/internal/render"
	"ltrmap/internal/scaffold"
	"ltrmap/internal/version"
	"ltrmap/internal/writers"
)

// identityReport pairs one scope x bin cohort with its aggregate row and the
// average-map profile rendered for it (nil unless --visual asked for one).
type identityReport struct {
	Scope   cohort.Scope
	Bin     cohort.Bin
	Matched []*model.RepeatRegion
	Row     cohort.AggregateRow
	Profile *profile.Profile
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("ltrmap")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ltrmap version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if opts.ConfigFile != "" {
		cf, err := appconfig.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		appconfig.Merge(&opts, cf, fs)
		if err := opts.Validate(); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}

	log := &console.Logger{W: outw, Quiet: opts.Quiet}
	code := run(parent, &opts, log, stderr)
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func run(ctx context.Context, opts *cli.Options, log *console.Logger, errw io.Writer) int {
	bins, err := cohort.ParseIdentitySpec(opts.IdentitySpec)
	if err != nil {
		_, _ = fmt.Fprintf(errw, "--identity %v\n", err)
		return 2
	}

	var groupTypes []string
	if opts.GroupTypes != "" {
		for _, g := range strings.Split(opts.GroupTypes, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groupTypes = append(groupTypes, g)
			}
		}
		if err := cohort.ValidateGroupTypes(groupTypes); err != nil {
			_, _ = fmt.Fprintf(errw, "--group-types %v\n", err)
			return 2
		}
	}

	var scaffoldLengths map[string]int
	if opts.ScaffoldLengths != "" {
		scaffoldLengths, err = scaffold.LoadLengths(opts.ScaffoldLengths)
		if err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		_, _ = fmt.Fprintln(errw, err)
		return 3
	}

	log.Progressf("Reading elements from %s …", opts.GFF3)
	doc, err := gff3.Load(opts.GFF3)
	if err != nil {
		_, _ = fmt.Fprintln(errw, err)
		return 3
	}
	elements := doc.Elements(opts.MaxElements)
	log.Progressf("Loaded %d repeat_region features", len(elements))

	scopes, err := cohort.ParseScopes(opts.Chrom, elements)
	if err != nil {
		_, _ = fmt.Fprintf(errw, "--chrom %v\n", err)
		return 2
	}

	mf := manifest.New(opts.GFF3)
	mf.Elements = len(elements)

	if err := writeFileTo(opts.SummaryPath, func(w io.Writer) error {
		return output.WriteSummaryTSV(w, elements)
	}); err != nil {
		_, _ = fmt.Fprintln(errw, err)
		return 3
	}
	mf.Add(opts.SummaryPath)
	log.Progressf("Summary TSV written to %s", opts.SummaryPath)

	if opts.BedPath != "" {
		if err := writeFileTo(opts.BedPath, func(w io.Writer) error {
			return output.WriteBED(w, elements)
		}); err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		mf.Add(opts.BedPath)
		log.Progressf("BED written to %s", opts.BedPath)
	}

	if opts.ASCII || opts.SVG {
		// --width is shared with the SVG canvas; pixel-scale values make
		// unreadable text bars, so anything past 200 columns falls back to 100.
		asciiWidth := opts.Width
		if asciiWidth > 200 {
			asciiWidth = 100
		}
		err := pipeline.ForEachElement(ctx, pipeline.Config{Workers: opts.Workers}, elements,
			func(e *model.RepeatRegion) error {
				if opts.ASCII {
					path := filepath.Join(opts.OutDir, e.ID+".txt")
					if err := os.WriteFile(path, []byte(render.ASCIIMap(e, asciiWidth, opts.Ruler)), 0o644); err != nil {
						return err
					}
				}
				if opts.SVG {
					path := filepath.Join(opts.OutDir, e.ID+".svg")
					if err := writeFileTo(path, func(w io.Writer) error {
						render.SVGMap(w, e, opts.Width, opts.Height, opts.Ruler, opts.Palette)
						return nil
					}); err != nil {
						return err
					}
				}
				return nil
			})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		log.Progressf("Per-element postcard rendering completed (ascii=%v, svg=%v)", opts.ASCII, opts.SVG)
	}

	if opts.IndexHTML {
		if opts.SVG {
			path := filepath.Join(opts.OutDir, "index.html")
			if err := writeFileTo(path, func(w io.Writer) error {
				return output.WriteIndexHTML(w, elements, opts.Width, opts.Height)
			}); err != nil {
				_, _ = fmt.Fprintln(errw, err)
				return 3
			}
			mf.Add(path)
		} else {
			log.Progressf("--index-html requested but --svg not enabled; skipping index generation")
		}
	}

	cfg := cohort.Config{
		ScaffoldLengths:  scaffoldLengths,
		SubstitutionRate: opts.SubstitutionRate,
		TopK:             opts.TopK,
		MinN:             opts.MinN,
	}

	var reports []identityReport
	for _, scope := range scopes {
		reports = append(reports, buildIdentityReports(elements, scope, bins, opts, cfg)...)
	}
	mf.Cohorts = len(reports)

	if code := writeIdentitySummary(reports, opts, log, mf, errw); code != 0 {
		return code
	}
	if code := writeIdentityPostcards(reports, opts, log, mf, errw); code != 0 {
		return code
	}
	log.Progressf("Identity bins processed (%d cohorts)", len(reports))

	if len(groupTypes) > 0 {
		rows, err := cohort.ComputeAggregates(elements, groupTypes, cfg)
		if err != nil {
			_, _ = fmt.Fprintf(errw, "--group-types %v\n", err)
			return 2
		}
		path := filepath.Join(opts.OutDir, "group_stats.tsv")
		if err := writeFileTo(path, func(w io.Writer) error {
			return writers.WriteAggregate("text", w, rows)
		}); err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		mf.Add(path)
		log.Progressf("Group statistics written to %s (%d groups)", path, len(rows))
	}

	if opts.ManifestPath != "" {
		if err := mf.Write(opts.ManifestPath); err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		log.Progressf("Manifest written to %s", opts.ManifestPath)
	}

	log.Progressf("Done.")
	return 0
}

func buildIdentityReports(
	elements []*model.RepeatRegion,
	scope cohort.Scope,
	bins []cohort.Bin,
	opts *cli.Options,
	cfg cohort.Config,
) []identityReport {
	var scoped []*model.RepeatRegion
	for _, e := range elements {
		if scope.Matches(e) {
			scoped = append(scoped, e)
		}
	}
	reports := make([]identityReport, 0, len(bins))
	for _, bin := range bins {
		var matched []*model.RepeatRegion
		for _, e := range scoped {
			if bin.Matches(e) {
				matched = append(matched, e)
			}
		}
		label := scope.Label() + ":" + bin.Label
		row := cohort.Summarize("identity", label, matched, cfg)

		var prof *profile.Profile
		if opts.Visual != cli.VisualNone && len(matched) > 0 {
			b := bin
			prof = profile.Build(matched, profile.Params{
				Label:      bin.Label,
				GroupLabel: scope.Label(),
				Range:      &b,
				MinN:       opts.MinN,
			})
		}
		reports = append(reports, identityReport{
			Scope:   scope,
			Bin:     bin,
			Matched: matched,
			Row:     row,
			Profile: prof,
		})
	}
	return reports
}

func writeIdentitySummary(
	reports []identityReport,
	opts *cli.Options,
	log *console.Logger,
	mf *manifest.Manifest,
	errw io.Writer,
) int {
	if len(reports) == 0 {
		return 0
	}
	rows := make([]cohort.AggregateRow, len(reports))
	for i, r := range reports {
		rows[i] = r.Row
	}
	tsvPath := opts.AggregateTSV
	if tsvPath == "" {
		tsvPath = filepath.Join(opts.OutDir, "identity_bins.tsv")
	}
	if err := writeFileTo(tsvPath, func(w io.Writer) error {
		return writers.WriteAggregate("text", w, rows)
	}); err != nil {
		_, _ = fmt.Fprintln(errw, err)
		return 3
	}
	mf.Add(tsvPath)
	log.PrintIdentityTable(rows)
	if opts.AggregateJSON != "" {
		if err := writeFileTo(opts.AggregateJSON, func(w io.Writer) error {
			return writers.WriteAggregate("json", w, rows)
		}); err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		mf.Add(opts.AggregateJSON)
	}
	return 0
}

func writeIdentityPostcards(
	reports []identityReport,
	opts *cli.Options,
	log *console.Logger,
	mf *manifest.Manifest,
	errw io.Writer,
) int {
	if opts.Visual == cli.VisualNone {
		return 0
	}
	showQuantiles := opts.Visual == cli.VisualQuantiles
	svgEnabled := opts.VisualOut == "text+svg"
	dir := filepath.Join(opts.OutDir, "identity_postcards")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintln(errw, err)
		return 3
	}
	var written []string
	for _, r := range reports {
		if !r.Profile.HasContent() {
			continue
		}
		base := r.Scope.Label() + "_" + r.Bin.Slug()
		txtPath := filepath.Join(dir, base+".txt")
		txt := render.AverageASCIIMap(r.Profile, opts.PostcardASCIIWidth, true, showQuantiles)
		if err := os.WriteFile(txtPath, []byte(txt), 0o644); err != nil {
			_, _ = fmt.Fprintln(errw, err)
			return 3
		}
		written = append(written, base+".txt")
		mf.Add(txtPath)
		if svgEnabled {
			svgPath := filepath.Join(dir, base+".svg")
			if err := writeFileTo(svgPath, func(w io.Writer) error {
				render.AverageSVGMap(w, r.Profile, opts.PostcardSVGWidth, opts.PostcardSVGHeight, opts.Palette, showQuantiles)
				return nil
			}); err != nil {
				_, _ = fmt.Fprintln(errw, err)
				return 3
			}
			written = append(written, base+".svg")
			mf.Add(svgPath)
		}
	}
	if len(written) > 0 {
		exts := map[string]bool{}
		for _, name := range written {
			exts[strings.TrimPrefix(filepath.Ext(name), ".")] = true
		}
		var kinds []string
		for ext := range exts {
			kinds = append(kinds, ext)
		}
		sort.Strings(kinds)
		log.Progressf("Identity postcards saved under %s (%s files: %d)", dir, strings.Join(kinds, ", "), len(written))
	}
	return 0
}

// writeFileTo creates the parent directory if needed and streams fn into a
// buffered file handle.
func writeFileTo(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
