// Package integrations provides the HTTP plumbing shared by remote clients.
//
// # Shared client
//
// Every request in the process goes through one [http.Client] with a bounded
// connection pool, created once by [InitHTTPClient] (or lazily with defaults
// by [HTTPClient]). Scanning thousands of files reuses those connections
// instead of opening one per request.
//
//	integrations.InitHTTPClient(integrations.HTTPConfig{MaxConnsPerHost: 64})
//
// # Client
//
// [Client] adds default headers, JSON decoding, response caching through
// [cache.Cache] and status mapping: any non-2xx response becomes an
// [errors.HTTPError] carrying the status code and URL.
//
// Service-specific clients live in subpackages:
//
//   - [github]: raw file content and repository search
package integrations
