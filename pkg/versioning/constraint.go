package versioning

import "strings"

// ConstraintKind tags the shape of a [Constraint].
type ConstraintKind int

const (
	// Any means no version was declared.
	Any ConstraintKind = iota
	// Exact pins a single version, as legacy package lists do.
	Exact
	// Ranged admits every version inside a [Range].
	Ranged
)

func (k ConstraintKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Ranged:
		return "range"
	default:
		return "any"
	}
}

// Constraint is the version requirement attached to a package reference.
// The zero value is an unconstrained requirement.
type Constraint struct {
	Kind    ConstraintKind
	Version *Version // set when Kind == Exact
	Range   *Range   // set when Kind == Ranged
}

// Unconstrained returns a Constraint that accepts any version.
func Unconstrained() Constraint { return Constraint{} }

// ExactVersion returns a Constraint pinned to v.
func ExactVersion(v *Version) Constraint { return Constraint{Kind: Exact, Version: v} }

// InRange returns a Constraint bounded by r.
func InRange(r *Range) Constraint { return Constraint{Kind: Ranged, Range: r} }

// IsAny reports whether no version was declared.
func (c Constraint) IsAny() bool { return c.Kind == Any }

// String renders the constraint: empty for Any, the normalized version for
// Exact, interval notation for Ranged.
func (c Constraint) String() string {
	switch c.Kind {
	case Exact:
		return c.Version.String()
	case Ranged:
		return c.Range.String()
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Constraint) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Interval and floating
// notation decode to Ranged, a bare version to Exact, empty text to Any.
func (c *Constraint) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch {
	case s == "":
		*c = Unconstrained()
	case s[0] == '[' || s[0] == '(' || strings.Contains(s, "*"):
		r, err := ParseRange(s)
		if err != nil {
			return err
		}
		*c = InRange(r)
	default:
		v, err := ParseVersion(s)
		if err != nil {
			return err
		}
		*c = ExactVersion(v)
	}
	return nil
}
