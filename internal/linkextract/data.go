package linkextract

import "net/url"

/*
Responsibilities

- Walk a parsed page's anchors and collect candidate crawl targets
- Reject non-navigable schemes, resolve and canonicalize hrefs
- Apply same-domain and include/exclude glob scoping
- Capture a short block-level context snippet per link, for the Smart
  crawler's LLM classifier

Knows nothing about fetching, robots policy, or the frontier.
*/

// Link is one surviving anchor after scheme rejection, resolution,
// canonicalization, and scoping.
type Link struct {
	URL     url.URL
	Context string
}

// Options controls scoping of the extracted link set.
type Options struct {
	SameDomainOnly  bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultOptions returns the conservative default: same-domain only, no
// include/exclude filters.
func DefaultOptions() Options {
	return Options{SameDomainOnly: true}
}
