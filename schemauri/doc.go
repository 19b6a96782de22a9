// Package schemauri provides the URI canonicalization and resolution
// helpers the schema builder and validator need for $id/$ref/$dynamicRef
// bookkeeping: lower-casing the scheme, stripping default ports, removing
// dot segments per RFC 3986 §5.2.4, and resolving a reference against a base
// URI.
//
// It wraps [net/url] rather than reimplementing URI parsing: no example
// repository in the retrieval pack carries a third-party URI library, and
// [net/url] already implements RFC 3986 resolution correctly via
// [net/url.URL.ResolveReference]; this package adds only the
// schema-specific canonical form and fragment handling spec §4.4 needs on
// top of it.
package schemauri
