// internal/config/config.go
//
// Optional config-file support. Flags always win: values from the file are
// applied only where the corresponding flag was not set on the command line.
package config

import (
	"flag"
	"fmt"

	"github.com/spf13/viper"

	"ltrmap/internal/cli"
)

// File mirrors the keys a ltrmap config file may carry.
type File struct {
	Identity         string         `mapstructure:"identity"`
	TopK             int            `mapstructure:"top_k"`
	MinN             int            `mapstructure:"min_n"`
	Palette          string         `mapstructure:"palette"`
	SubstitutionRate float64        `mapstructure:"substitution_rate"`
	ScaffoldLengths  string         `mapstructure:"scaffold_lengths"`
	GroupTypes       string         `mapstructure:"group_types"`
	Visual           string         `mapstructure:"visual"`
	Out              string         `mapstructure:"out"`
	Workers          int            `mapstructure:"workers"`
	Chrom            string         `mapstructure:"chrom"`
	OutDir           string         `mapstructure:"outdir"`
	Extra            map[string]any `mapstructure:",remain"`
}

// fileKeys are the recognized config keys; each is env-bound so Unmarshal
// picks up LTRMAP_<KEY> even when the key is absent from the file.
var fileKeys = []string{
	"identity", "top_k", "min_n", "palette", "substitution_rate",
	"scaffold_lengths", "group_types", "visual", "out", "workers",
	"chrom", "outdir",
}

// Load reads the config file at path (any format viper understands, inferred
// from the extension) plus LTRMAP_* environment overrides.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("LTRMAP")
	v.AutomaticEnv()
	for _, key := range fileKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &f, nil
}

// Merge copies file values into opt for every flag the user did not set
// explicitly. fs must be the flag set ParseArgs ran on.
func Merge(opt *cli.Options, f *File, fs *flag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if !set["identity"] && f.Identity != "" {
		opt.IdentitySpec = f.Identity
	}
	if !set["top-k"] && f.TopK > 0 {
		opt.TopK = f.TopK
	}
	if !set["min-n"] && f.MinN > 0 {
		opt.MinN = f.MinN
	}
	if !set["palette"] && f.Palette != "" {
		opt.Palette = f.Palette
	}
	if !set["substitution-rate"] && f.SubstitutionRate > 0 {
		opt.SubstitutionRate = f.SubstitutionRate
	}
	if !set["scaffold-lengths"] && f.ScaffoldLengths != "" {
		opt.ScaffoldLengths = f.ScaffoldLengths
	}
	if !set["group-types"] && f.GroupTypes != "" {
		opt.GroupTypes = f.GroupTypes
	}
	if !set["visual"] && f.Visual != "" {
		opt.Visual = f.Visual
	}
	if !set["out"] && f.Out != "" {
		opt.VisualOut = f.Out
	}
	if !set["workers"] && f.Workers > 0 {
		opt.Workers = f.Workers
	}
	if !set["chrom"] && f.Chrom != "" {
		opt.Chrom = f.Chrom
	}
	if !set["outdir"] && f.OutDir != "" {
		opt.OutDir = f.OutDir
	}
}
