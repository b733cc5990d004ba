// core/cohort/bins.go
package cohort

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ltrmap-core/model"
)

// Bin is an identity-fraction range. Nil bounds are open ends. A bin with
// both bounds nil is the "all" bin: it passes every element without reading
// the identity field, so missing-identity elements land in "all" cohorts but
// never in any bounded cohort (even one like >=0.0).
type Bin struct {
	Label string
	Min   *float64
	Max   *float64
}

func (b Bin) IsAll() bool { return b.Min == nil && b.Max == nil }

// Matches reports whether the element falls inside the bin. Bounded bins
// require identity to be present; bounds are inclusive.
func (b Bin) Matches(r *model.RepeatRegion) bool {
	if b.IsAll() {
		return true
	}
	if r.Identity == nil {
		return false
	}
	if b.Min != nil && *r.Identity < *b.Min {
		return false
	}
	if b.Max != nil && *r.Identity > *b.Max {
		return false
	}
	return true
}

// Slug is the bin label reduced to a filename-safe token.
func (b Bin) Slug() string {
	var sb strings.Builder
	for _, ch := range b.Label {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			sb.WriteRune(unicode.ToLower(ch))
		} else {
			sb.WriteByte('_')
		}
	}
	slug := strings.Trim(sb.String(), "_")
	if slug == "" {
		return "bin"
	}
	return slug
}

// ParseIdentitySpec parses the --identity grammar:
//
//	auto | all | >=X | label=X..Y | bins=0.90..0.94,0.94..0.98,>=0.98
//
// "auto" (and "default") expands to the all bin plus >=0.980.
func ParseIdentitySpec(spec string) ([]Bin, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "auto"
	}
	switch strings.ToLower(spec) {
	case "auto", "default":
		min := 0.98
		return []Bin{
			{Label: "all"},
			{Label: ">=0.980", Min: &min},
		}, nil
	case "all":
		return []Bin{{Label: "all"}}, nil
	}

	tokenSource := spec
	if strings.HasPrefix(strings.ToLower(spec), "bins=") {
		tokenSource = spec[len("bins="):]
	}
	var bins []Bin
	for _, token := range strings.Split(tokenSource, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if i := strings.Index(token, "="); i >= 0 && !strings.HasPrefix(token, ">=") {
			b, err := binFromRange(strings.TrimSpace(token[i+1:]), strings.TrimSpace(token[:i]))
			if err != nil {
				return nil, err
			}
			bins = append(bins, b)
			continue
		}
		b, err := binFromRange(token, "")
		if err != nil {
			return nil, err
		}
		bins = append(bins, b)
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("no valid identity bins parsed")
	}
	return bins, nil
}

func binFromRange(rangeStr, customLabel string) (Bin, error) {
	text := strings.TrimSpace(rangeStr)
	if text == "" {
		return Bin{}, fmt.Errorf("empty identity range")
	}
	var min, max *float64
	if strings.HasPrefix(text, ">=") {
		v, err := strconv.ParseFloat(text[2:], 64)
		if err != nil {
			return Bin{}, fmt.Errorf("invalid identity threshold %q", rangeStr)
		}
		min = &v
	} else {
		split := false
		for _, delim := range []string{"..", "-", "–"} {
			i := strings.Index(text, delim)
			if i < 0 {
				continue
			}
			lo, err := strconv.ParseFloat(text[:i], 64)
			if err != nil {
				return Bin{}, fmt.Errorf("invalid identity range %q", rangeStr)
			}
			hi, err := strconv.ParseFloat(text[i+len(delim):], 64)
			if err != nil {
				return Bin{}, fmt.Errorf("invalid identity range %q", rangeStr)
			}
			if hi < lo {
				return Bin{}, fmt.Errorf("identity range %q has max < min", rangeStr)
			}
			min, max = &lo, &hi
			split = true
			break
		}
		if !split {
			return Bin{}, fmt.Errorf("unsupported identity descriptor %q", rangeStr)
		}
	}
	label := customLabel
	if label == "" {
		label = formatIdentityLabel(min, max)
	}
	return Bin{Label: label, Min: min, Max: max}, nil
}

func formatIdentityLabel(min, max *float64) string {
	switch {
	case min != nil && max == nil:
		return fmt.Sprintf(">=%.3f", *min)
	case min != nil && max != nil:
		return fmt.Sprintf("%.3f-%.3f", *min, *max)
	default:
		return "all"
	}
}
