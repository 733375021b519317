package deps

import (
	"testing"

	"github.com/loic-sharma/NuGet.Dependents/pkg/versioning"
)

func TestPackageReferenceString(t *testing.T) {
	r, _ := versioning.ParseRange("1.2.3")
	tests := []struct {
		ref  PackageReference
		want string
	}{
		{PackageReference{ID: "Serilog"}, "Serilog "},
		{PackageReference{ID: "Newtonsoft.Json", Version: versioning.ExactVersion(versioning.MustParseVersion("9.0.1"))}, "Newtonsoft.Json 9.0.1"},
		{PackageReference{ID: "xunit", Version: versioning.InRange(r)}, "xunit [1.2.3, )"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestScanResultHelpers(t *testing.T) {
	res := &ScanResult{
		Packages: []PackageReference{
			{ID: "A", Origin: "src/App.csproj"},
			{ID: "B", Origin: "src/App.csproj"},
			{ID: "C", Origin: "lib/packages.config"},
		},
		Failures: []Failure{{Path: "broken.csproj", Error: "boom"}},
	}

	if got := res.PackagesFrom("SRC/app.csproj"); len(got) != 2 {
		t.Errorf("PackagesFrom() = %d refs, want 2", len(got))
	}
	if got := res.FailedPaths(); len(got) != 1 || got[0] != "broken.csproj" {
		t.Errorf("FailedPaths() = %v", got)
	}
}

func TestRepositoryFullName(t *testing.T) {
	r := Repository{Owner: "NuGet", Name: "NuGet.Client"}
	if r.FullName() != "NuGet/NuGet.Client" {
		t.Errorf("FullName() = %q", r.FullName())
	}
}
