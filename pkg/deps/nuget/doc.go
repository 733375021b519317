// Package nuget parses NuGet dependency manifests.
//
// # Overview
//
// Two manifest formats are supported, each behind [deps.ManifestParser]:
//
//   - [ProjectParser]: SDK-style and legacy MSBuild project files
//     (.csproj, .fsproj, .vbproj) declaring PackageReference items
//   - [PackagesConfigParser]: legacy packages.config package lists
//
// # Project Files
//
// Every PackageReference element is selected, wherever it appears in the
// document:
//
//	<PackageReference Include="Serilog" Version="[2.0, 3.0)" />
//	<PackageReference Include="xunit">
//	  <Version>2.4.1</Version>
//	</PackageReference>
//
// Include is required; elements without it are skipped. The version may be
// an attribute or a child element. A missing version means the reference is
// unconstrained; a malformed one fails the whole file. PrivateAssets="all"
// marks a development-only reference.
//
// # packages.config
//
//	<packages>
//	  <package id="Newtonsoft.Json" version="9.0.1" targetFramework="net45" />
//	</packages>
//
// id and version are required. allowedVersions, targetFramework and
// developmentDependency are recorded when present.
//
// # Errors
//
// Parse failures carry [errors.ErrCodeParse]. Empty or whitespace-only
// documents parse to an empty list.
package nuget
