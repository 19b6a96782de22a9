package schemauri

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURI is returned when a string cannot be parsed or canonicalized
// as a URI reference.
var ErrInvalidURI = errors.New("schemauri: invalid uri")

// Parse parses a URI reference (absolute or relative).
func Parse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURI, s, err)
	}

	return u, nil
}

// Resolve resolves reference against base, returning the canonical
// absolute URI string. base must already be absolute.
func Resolve(base *url.URL, reference string) (string, error) {
	ref, err := Parse(reference)
	if err != nil {
		return "", err
	}

	resolved := base.ResolveReference(ref)

	return Canonicalize(resolved.String())
}

// Canonicalize normalizes a URI string: lower-cases the scheme and host,
// strips a default port for http/https, and removes "." and ".." path
// segments. It does not strip the fragment; callers that need the
// fragment-less base (e.g. for $id canonical ids) should call
// [WithoutFragment] on the result.
func Canonicalize(s string) (string, error) {
	u, err := Parse(s)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)

	if u.Host != "" {
		u.Host = strings.ToLower(u.Host)
		u.Host = stripDefaultPort(u.Scheme, u.Host)
	}

	u.Path = removeDotSegments(u.Path)

	return u.String(), nil
}

func stripDefaultPort(scheme, host string) string {
	defaultPorts := map[string]string{"http": ":80", "https": ":443"}

	if port, ok := defaultPorts[scheme]; ok && strings.HasSuffix(host, port) {
		return strings.TrimSuffix(host, port)
	}

	return host
}

// removeDotSegments implements RFC 3986 §5.2.4 on an already-split path.
func removeDotSegments(path string) string {
	if path == "" {
		return path
	}

	absolute := strings.HasPrefix(path, "/")
	trailingSlash := strings.HasSuffix(path, "/") && path != "/"

	segments := strings.Split(strings.Trim(path, "/"), "/")

	var out []string

	for _, seg := range segments {
		switch seg {
		case ".", "":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}

	result := strings.Join(out, "/")

	if absolute {
		result = "/" + result
	}

	if trailingSlash && result != "" && !strings.HasSuffix(result, "/") {
		result += "/"
	}

	if result == "" && absolute {
		result = "/"
	}

	return result
}

// WithoutFragment returns s with any "#..." fragment removed.
func WithoutFragment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}

	return s
}

// Fragment returns the fragment portion of s (without the leading '#'), or
// "" if none.
func Fragment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[idx+1:]
	}

	return ""
}

// IsAbsolute reports whether s parses as an absolute URI (has a scheme).
func IsAbsolute(s string) bool {
	u, err := Parse(s)
	if err != nil {
		return false
	}

	return u.IsAbs()
}

// HasNonEmptyFragment reports whether s has a fragment with at least one
// character after '#'.
func HasNonEmptyFragment(s string) bool {
	return Fragment(s) != ""
}
