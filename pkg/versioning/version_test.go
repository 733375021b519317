package versioning

import (
	"strings"
	"testing"

	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1", "1.0.0", false},
		{"1.2", "1.2.0", false},
		{"1.2.3", "1.2.3", false},
		{"1.2.3.4", "1.2.3.4", false},
		{"1.2.3.0", "1.2.3", false},
		{" 9.0.1 ", "9.0.1", false},
		{"2.0.0-beta.1", "2.0.0-beta.1", false},
		{"2.0.0-rc-final+sha.abc", "2.0.0-rc-final", false},

		{"", "", true},
		{"1.2.3.4.5", "", true},
		{"1..2", "", true},
		{"v1.2", "", true},
		{"1.2-", "", true},
		{"1.2-beta..1", "", true},
		{"1.2+", "", true},
		{"$(Version)", "", true},
		{"1.x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) = %v, want error", tt.input, v)
				}
				if !errors.Is(err, errors.ErrCodeParse) {
					t.Errorf("ParseVersion(%q) code = %v, want PARSE_ERROR", tt.input, errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("ParseVersion(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0.0", 0},
		{"1.0.0+meta", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.0.0.1", "1.0.0", 1},
		{"1.0.0-beta", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0-beta.2", "1.0.0-beta.11", -1},
		{"1.0.0-beta.1", "1.0.0-beta", 1},
		{"1.0.0-1", "1.0.0-alpha", -1},
		{"1.0.0-BETA", "1.0.0-beta", 0},
		{"10.0", "9.9", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got := MustParseVersion(tt.a).Compare(MustParseVersion(tt.b))
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVersionLabels(t *testing.T) {
	v := MustParseVersion("1.2.0.0-pre+build")
	if v.Release != "pre" {
		t.Errorf("Release = %q, want pre", v.Release)
	}
	if v.Metadata != "build" {
		t.Errorf("Metadata = %q, want build", v.Metadata)
	}
}

func TestParseErrorMessages(t *testing.T) {
	for _, input := range []string{"1.x.0", "1..0", "[1.0.x, 2.0)", "1.x.*"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRange(input)
			if err == nil {
				t.Fatalf("ParseRange(%q) succeeded", input)
			}
			if n := strings.Count(err.Error(), string(errors.ErrCodeParse)); n != 1 {
				t.Errorf("error %q names %s %d times, want once", err, errors.ErrCodeParse, n)
			}
		})
	}
}
