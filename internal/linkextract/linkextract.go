package linkextract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/oss-crawler/webcrawl/pkg/urlutil"
)

var rejectedSchemes = []string{"#", "mailto:", "javascript:", "tel:"}

const contextMaxLen = 200

const blockSelector = "p, li, h1, h2, h3, h4, h5, h6, div"

// Extract parses rawHTML and returns the ordered, deduped set of links
// reachable from base, scoped by opts. Image src attributes are returned
// separately (canonicalized, not scoped) for the asset resolver.
func Extract(rawHTML string, base url.URL, opts Options) ([]Link, []url.URL) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nil
	}

	links := make([]Link, 0)
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link, ok := resolveLink(href, base, opts)
		if !ok {
			return
		}

		key := link.URL.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		link.Context = blockContext(sel)
		links = append(links, link)
	})

	var images []url.URL
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" {
			return
		}
		resolved, err := url.Parse(src)
		if err != nil {
			return
		}
		images = append(images, urlutil.ResolveAndCanonicalize(base, *resolved))
	})

	return links, images
}

func resolveLink(href string, base url.URL, opts Options) (Link, bool) {
	if href == "" {
		return Link{}, false
	}

	lower := strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range rejectedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return Link{}, false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return Link{}, false
	}

	resolved := urlutil.ResolveAndCanonicalize(base, *ref)

	if opts.SameDomainOnly && !urlutil.SameHost(base, resolved) {
		return Link{}, false
	}

	if len(opts.IncludePatterns) > 0 && !matchesAny(resolved.Path, opts.IncludePatterns) {
		return Link{}, false
	}
	if len(opts.ExcludePatterns) > 0 && matchesAny(resolved.Path, opts.ExcludePatterns) {
		return Link{}, false
	}

	return Link{URL: resolved}, true
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if urlutil.PathMatchesGlob(path, p) {
			return true
		}
	}
	return false
}

// blockContext walks sel's ancestors for the nearest block-level
// container and returns its trimmed text, truncated to contextMaxLen.
// Falls back to the anchor's own text when no block ancestor exists.
func blockContext(sel *goquery.Selection) string {
	text := ""
	if ancestor := sel.ParentsFiltered(blockSelector).First(); ancestor.Length() > 0 {
		text = ancestor.Text()
	} else {
		text = sel.Text()
	}

	text = strings.TrimSpace(strings.Join(strings.Fields(text), " "))
	if len(text) > contextMaxLen {
		text = text[:contextMaxLen]
	}
	return text
}
