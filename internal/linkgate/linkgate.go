package linkgate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/internal/linkextract"
	"github.com/oss-crawler/webcrawl/internal/llm"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

/*
Responsibilities

- Decide, for the Smart crawler, which freshly-discovered links are worth
  admitting into the frontier, based on a free-text crawl description
- Batch links into fixed-size chunks for the default classification cadence,
  or classify one link at a time when configured to
- Fail open on classifier error or timeout: an unreachable LLM must never
  stop a Smart crawl outright, only degrade it to Simple-like behavior for
  that page's links

Knows nothing about fetching, robots policy, or frontier admission - those
stay the scheduler's job. Gate only narrows the list the scheduler was
already going to submit.
*/

const batchSize = 50

// Gate narrows a page's discovered links down to the ones worth crawling.
// parent is the page the links were discovered on, used only for prompt
// context. A non-nil error means the classifier failed for at least one
// batch or link; every link of a failed batch or call is admitted (fail
// open), while links classified successfully are still filtered.
type Gate interface {
	Gate(ctx context.Context, parent url.URL, links []linkextract.Link) ([]url.URL, failure.ClassifiedError)
}

// AllowAllGate is the Simple crawler's gate: every discovered link is
// admitted, unconditionally.
type AllowAllGate struct{}

func (AllowAllGate) Gate(_ context.Context, _ url.URL, links []linkextract.Link) ([]url.URL, failure.ClassifiedError) {
	return urlsOf(links), nil
}

// SmartGate classifies discovered links against a free-text description
// via an llm.Provider, in either batch or per-link mode.
type SmartGate struct {
	provider    llm.Provider
	description string
	mode        config.LinkClassificationMode
}

func NewSmartGate(provider llm.Provider, description string, mode config.LinkClassificationMode) *SmartGate {
	if mode == "" {
		mode = config.LinkClassificationBatch
	}
	return &SmartGate{provider: provider, description: description, mode: mode}
}

func (g *SmartGate) Gate(ctx context.Context, parent url.URL, links []linkextract.Link) ([]url.URL, failure.ClassifiedError) {
	if len(links) == 0 {
		return nil, nil
	}
	if g.mode == config.LinkClassificationPerLink {
		return g.gatePerLink(ctx, parent, links)
	}
	return g.gateBatch(ctx, parent, links)
}

func (g *SmartGate) gateBatch(ctx context.Context, parent url.URL, links []linkextract.Link) ([]url.URL, failure.ClassifiedError) {
	approved := make([]url.URL, 0, len(links))
	var lastErr failure.ClassifiedError

	for start := 0; start < len(links); start += batchSize {
		end := start + batchSize
		if end > len(links) {
			end = len(links)
		}
		chunk := links[start:end]

		response, err := g.provider.InvokeStructured(
			ctx,
			batchPrompt(parent, g.description, chunk),
			batchSchema(),
			llm.InvokeOptions{CallSite: llm.CallSiteLinkClassifier},
		)
		if err != nil {
			// Fail open: admit the whole chunk, remember the error for the
			// caller's observability, keep classifying the rest of the page.
			lastErr = err
			approved = append(approved, urlsOf(chunk)...)
			continue
		}

		approved = append(approved, selectByIndices(chunk, response["relevant"])...)
	}

	return approved, lastErr
}

func (g *SmartGate) gatePerLink(ctx context.Context, parent url.URL, links []linkextract.Link) ([]url.URL, failure.ClassifiedError) {
	approved := make([]url.URL, 0, len(links))
	var lastErr failure.ClassifiedError

	for _, link := range links {
		response, err := g.provider.InvokeStructured(
			ctx,
			perLinkPrompt(parent, g.description, link),
			perLinkSchema(),
			llm.InvokeOptions{CallSite: llm.CallSiteLinkClassifierPerLink},
		)
		if err != nil {
			// Fail open on this link.
			lastErr = err
			approved = append(approved, link.URL)
			continue
		}
		if relevant, ok := response["relevant"].(bool); ok && !relevant {
			continue
		}
		approved = append(approved, link.URL)
	}

	return approved, lastErr
}

func batchSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"relevant": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []string{"relevant"},
	}
}

func perLinkSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"relevant": map[string]any{"type": "boolean"},
		},
		"required": []string{"relevant"},
	}
}

// batchPrompt numbers links starting at 1: the schema's "relevant" index
// list is 1-indexed into the chunk, matching selectByIndices.
func batchPrompt(parent url.URL, description string, links []linkextract.Link) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crawl goal: %s\nPage: %s\nWhich of these links are relevant? Respond with the indices of relevant links.\n", description, parent.String())
	for i, link := range links {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, link.URL.String(), link.Context)
	}
	return b.String()
}

func perLinkPrompt(parent url.URL, description string, link linkextract.Link) string {
	return fmt.Sprintf(
		"Crawl goal: %s\nPage: %s\nLink: %s\nContext: %s\nIs this link relevant to the crawl goal?",
		description, parent.String(), link.URL.String(), link.Context,
	)
}

// selectByIndices returns the links named by response's "relevant" index
// list (1-indexed into the chunk, per batchPrompt), silently dropping any
// index that is malformed or out of range.
func selectByIndices(links []linkextract.Link, raw any) []url.URL {
	indices, ok := raw.([]any)
	if !ok {
		return nil
	}
	selected := make([]url.URL, 0, len(indices))
	for _, rawIdx := range indices {
		oneBased, ok := asInt(rawIdx)
		if !ok {
			continue
		}
		idx := oneBased - 1
		if idx < 0 || idx >= len(links) {
			continue
		}
		selected = append(selected, links[idx].URL)
	}
	return selected
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func urlsOf(links []linkextract.Link) []url.URL {
	urls := make([]url.URL, len(links))
	for i, link := range links {
		urls[i] = link.URL
	}
	return urls
}
