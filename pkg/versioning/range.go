package versioning

import (
	"strings"

	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

// Range is a NuGet version range. A nil Min or Max means the range is open on
// that side.
type Range struct {
	Min          *Version
	MinInclusive bool
	Max          *Version
	MaxInclusive bool

	// Float holds the range as written when its lower bound floats ("1.*",
	// "2.0.0-beta*", "[1.0.*, 2.0.0)"). Min is then the lowest matching
	// version.
	Float string
}

// ParseRange parses s using NuGet's range grammar. Errors carry
// [errors.ErrCodeParse].
func ParseRange(s string) (*Range, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, errors.New(errors.ErrCodeParse, "empty version range")
	}

	if raw[0] != '[' && raw[0] != '(' {
		if strings.Contains(raw, "*") {
			return parseFloat(raw)
		}
		v, err := ParseVersion(raw)
		if err != nil {
			return nil, err
		}
		return &Range{Min: v, MinInclusive: true}, nil
	}

	last := raw[len(raw)-1]
	if last != ']' && last != ')' {
		return nil, errors.New(errors.ErrCodeParse, "unterminated version range %q", raw)
	}
	r := &Range{MinInclusive: raw[0] == '[', MaxInclusive: last == ']'}
	inner := strings.TrimSpace(raw[1 : len(raw)-1])

	lo, hi, hasComma := strings.Cut(inner, ",")
	if !hasComma {
		// Only "[x]" is legal without a comma.
		if !r.MinInclusive || !r.MaxInclusive || inner == "" {
			return nil, errors.New(errors.ErrCodeParse, "invalid version range %q", raw)
		}
		v, err := ParseVersion(inner)
		if err != nil {
			return nil, err
		}
		r.Min, r.Max = v, v
		return r, nil
	}
	if strings.Contains(hi, ",") {
		return nil, errors.New(errors.ErrCodeParse, "too many bounds in version range %q", raw)
	}

	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if lo == "" && hi == "" {
		return nil, errors.New(errors.ErrCodeParse, "version range %q has no bounds", raw)
	}
	if strings.Contains(hi, "*") {
		return nil, errors.New(errors.ErrCodeParse, "floating upper bound in version range %q", raw)
	}
	var err error
	switch {
	case strings.Contains(lo, "*"):
		if r.Min, err = floatMin(lo); err != nil {
			return nil, err
		}
	case lo != "":
		if r.Min, err = ParseVersion(lo); err != nil {
			return nil, err
		}
	}
	if hi != "" {
		if r.Max, err = ParseVersion(hi); err != nil {
			return nil, err
		}
	}
	if r.Min != nil && r.Max != nil {
		c := r.Min.Compare(r.Max)
		if c > 0 || c == 0 && !(r.MinInclusive && r.MaxInclusive) {
			return nil, errors.New(errors.ErrCodeParse, "empty version range %q", raw)
		}
	}
	if strings.Contains(lo, "*") {
		upper := ""
		if r.Max != nil {
			upper = r.Max.String()
		}
		r.Float = raw[:1] + lo + ", " + upper + raw[len(raw)-1:]
	}
	return r, nil
}

func parseFloat(raw string) (*Range, error) {
	lowest, err := floatMin(raw)
	if err != nil {
		return nil, err
	}
	return &Range{Min: lowest, MinInclusive: true, Float: raw}, nil
}

// floatMin returns the lowest version matched by a floating expression such
// as "1.*", "1.0.0-beta*", "1.0.0-*" or "1.*-*".
func floatMin(raw string) (*Version, error) {
	invalid := func() error {
		return errors.New(errors.ErrCodeParse, "invalid floating version %q", raw)
	}

	numeric, prerelease := raw, false
	if strings.HasSuffix(raw, "-*") && strings.Count(raw, "*") == 2 {
		numeric, prerelease = strings.TrimSuffix(raw, "-*"), true
	}
	if strings.Count(numeric, "*") != 1 || !strings.HasSuffix(numeric, "*") {
		return nil, invalid()
	}
	base := strings.TrimSuffix(numeric, "*")
	if strings.Contains(base, "+") {
		return nil, invalid()
	}

	var lowest string
	switch {
	case base == "":
		lowest = "0.0.0"
	case prerelease && (strings.Contains(base, "-") || !strings.HasSuffix(base, ".")):
		return nil, invalid()
	case strings.HasSuffix(base, ".") && strings.Contains(base, "-"):
		lowest = strings.TrimSuffix(base, ".")
	case strings.HasSuffix(base, "."):
		lowest = base + "0"
	case strings.HasSuffix(base, "-"):
		lowest = strings.TrimSuffix(base, "-")
	case strings.Contains(base, "-"):
		lowest = base
	default:
		return nil, invalid()
	}
	if prerelease {
		lowest += "-0"
	}

	v, err := ParseVersion(lowest)
	if err != nil {
		return nil, invalid()
	}
	return v, nil
}

// IsExact reports whether the range admits exactly one version.
func (r *Range) IsExact() bool {
	return r.Float == "" && r.Min != nil && r.Max != nil &&
		r.MinInclusive && r.MaxInclusive && r.Min.Equal(r.Max)
}

// String returns the range in NuGet's normalized interval notation.
func (r *Range) String() string {
	if r.Float != "" {
		return r.Float
	}
	if r.IsExact() {
		return "[" + r.Min.String() + "]"
	}
	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.Min != nil {
		b.WriteString(r.Min.String())
	}
	b.WriteString(", ")
	if r.Max != nil {
		b.WriteString(r.Max.String())
	}
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (r *Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
