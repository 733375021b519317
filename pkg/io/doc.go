// Package io writes scan results as text or JSON and reads them back.
//
// # Text
//
// [WriteText] prints one block per repository:
//
//	Repository: NuGet/NuGet.Client
//	Stars: 1234
//	Newtonsoft.Json [13.0.1, )
//	NUnit 3.13.2
//	Serilog
//	! lib/packages.config: HTTP_ERROR: GET ...: 404 Not Found
//
// Each reference is rendered as "<id> <constraint>", with the constraint
// left blank when the manifest declared none. Failures follow the
// references, prefixed with "!".
//
// # JSON
//
// [WriteJSON] writes the [deps.ScanResult] as an indented object. Version
// constraints are encoded in NuGet's normalized text form, so a result read
// back with [ReadJSON] renders identically. [WriteJSONLines] writes one
// compact object per line for streaming many repositories into one file.
package io
