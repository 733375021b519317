package versioning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

// Version is a parsed NuGet version.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Revision int
	Release  string // prerelease label without the leading '-'
	Metadata string // build metadata without the leading '+'
}

// ParseVersion parses s as a NuGet version. Leading and trailing whitespace
// is ignored. Errors carry [errors.ErrCodeParse].
func ParseVersion(s string) (*Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, errors.New(errors.ErrCodeParse, "empty version")
	}

	rest := raw
	v := &Version{}
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		v.Metadata = rest[i+1:]
		rest = rest[:i]
		if !validLabels(v.Metadata) {
			return nil, errors.New(errors.ErrCodeParse, "invalid build metadata in version %q", raw)
		}
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		v.Release = rest[i+1:]
		rest = rest[:i]
		if !validLabels(v.Release) {
			return nil, errors.New(errors.ErrCodeParse, "invalid prerelease label in version %q", raw)
		}
	}

	fields := strings.Split(rest, ".")
	if len(fields) > 4 {
		return nil, errors.New(errors.ErrCodeParse, "too many components in version %q", raw)
	}
	nums := [4]int{}
	for i, f := range fields {
		n, err := parseComponent(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid version %q", raw)
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch, v.Revision = nums[0], nums[1], nums[2], nums[3]
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseComponent(f string) (int, error) {
	if f == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range f {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", f)
		}
	}
	return strconv.Atoi(f)
}

func validLabels(s string) bool {
	if s == "" {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return false
		}
		for _, r := range label {
			if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return false
			}
		}
	}
	return true
}

// String returns the normalized form: at least three numeric components, a
// fourth only when non-zero, then the prerelease label. Build metadata is
// dropped, as NuGet does when normalizing.
func (v *Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Patch))
	if v.Revision > 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(v.Revision))
	}
	if v.Release != "" {
		b.WriteByte('-')
		b.WriteString(v.Release)
	}
	return b.String()
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to,
// or after o. Metadata does not participate.
func (v *Version) Compare(o *Version) int {
	for _, d := range [4][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
		{v.Revision, o.Revision},
	} {
		if d[0] != d[1] {
			if d[0] < d[1] {
				return -1
			}
			return 1
		}
	}
	return compareRelease(v.Release, o.Release)
}

// Equal reports whether v and o compare equal.
func (v *Version) Equal(o *Version) bool { return v.Compare(o) == 0 }

func compareRelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareLabel(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareLabel(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
