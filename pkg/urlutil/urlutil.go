package urlutil

import "net/url"

// Canonicalize applies a deterministic normalization to a URL, producing a canonical form.
// It maps equivalent URL spellings to a single canonical representation.
//
// The normalization follows these rules:
//   - Scheme and host are lowercased
//   - Path is cleaned (trailing slashes removed, except for root "/")
//   - Fragments are removed
//   - Query parameters are removed
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Canonicalize(Canonicalize(url)) == Canonicalize(url)
//   - Context-free: does not depend on crawl history
func Canonicalize(sourceUrl url.URL) url.URL {
	// Create a copy to avoid mutating the original
	canonical := sourceUrl

	// Lowercase scheme and host
	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	// Remove default port if present
	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	// Clean the path: remove trailing slashes (except root)
	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
	}

	// Remove fragment (anchor)
	canonical.Fragment = ""
	canonical.RawFragment = ""

	// Remove query parameters
	canonical.RawQuery = ""
	canonical.ForceQuery = false

	return canonical
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// SameHost reports whether a and b canonicalize to the same host. Scheme
// and path are ignored; only the host comparison (case-insensitive, default
// ports stripped) matters.
func SameHost(a, b url.URL) bool {
	ca := Canonicalize(a)
	cb := Canonicalize(b)
	return ca.Host == cb.Host
}

// Resolve fills in a missing scheme/host on u using scheme/host, without
// touching a u that is already absolute. It is a lighter-weight alternative
// to ResolveAndCanonicalize for callers that only have the page's scheme and
// host on hand, not a full base url.URL.
func Resolve(u url.URL, scheme string, host string) url.URL {
	resolved := u
	if resolved.Scheme == "" {
		resolved.Scheme = scheme
	}
	if resolved.Host == "" {
		resolved.Host = host
	}
	return resolved
}

// FilterByHost returns the subset of urls whose host canonicalizes to the
// same host as allowedHost, preserving order.
func FilterByHost(allowedHost string, urls []url.URL) []url.URL {
	allowed := url.URL{Host: allowedHost}
	filtered := make([]url.URL, 0, len(urls))
	for _, u := range urls {
		if SameHost(u, allowed) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// ResolveAndCanonicalize resolves ref against base (as base.ResolveReference
// would) and returns the canonical form of the result.
func ResolveAndCanonicalize(base url.URL, ref url.URL) url.URL {
	resolved := base.ResolveReference(&ref)
	return Canonicalize(*resolved)
}

// PathMatchesGlob reports whether path matches pattern, where "*" matches
// any run of characters within a single path segment (not containing "/")
// and "**" matches any run of characters including "/". The match is
// anchored: the whole path must match the whole pattern.
func PathMatchesGlob(path string, pattern string) bool {
	return globMatch(path, pattern)
}

// globMatch recursively matches path against pattern. On encountering a
// star, it tries every possible length of match (0..remaining) for that
// star before giving up, which correctly handles "*" (segment-bounded,
// stops at "/") and "**" (unbounded) without ambiguity.
func globMatch(path string, pattern string) bool {
	if pattern == "" {
		return path == ""
	}

	if pattern[0] == '*' {
		double := len(pattern) > 1 && pattern[1] == '*'
		rest := pattern[1:]
		if double {
			rest = pattern[2:]
		}

		for i := 0; i <= len(path); i++ {
			if !double && i > 0 && path[i-1] == '/' {
				break
			}
			if globMatch(path[i:], rest) {
				return true
			}
		}
		return false
	}

	if path == "" {
		return false
	}
	if pattern[0] != path[0] {
		return false
	}
	return globMatch(path[1:], pattern[1:])
}
