// Package versioning parses NuGet package versions and version ranges.
//
// # Versions
//
// A [Version] has one to four numeric components followed by an optional
// prerelease label and build metadata:
//
//	1.2
//	1.2.3.4
//	2.0.0-beta.1+sha.5114f85
//
// Missing components are treated as zero when comparing, so "1.2" and
// "1.2.0" are equal.
//
// # Ranges
//
// A [Range] follows NuGet's interval notation:
//
//	1.0          min 1.0 inclusive, no upper bound
//	[1.0]        exactly 1.0
//	[1.0, 2.0)   1.0 <= v < 2.0
//	(, 2.0]      v <= 2.0
//	1.*          floating: newest 1.x
//
// # Constraints
//
// [Constraint] is the unified value attached to a package reference: either
// absent, an exact [Version], or a [Range]. Its text form round-trips through
// MarshalText/UnmarshalText so scan results can be cached and exported.
package versioning
