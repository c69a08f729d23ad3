package llm

import (
	"context"
	"encoding/json"

	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// Provider is the single seam every LLM-backed call site invokes through.
// Smart and Agent crawl modes never talk to an HTTP client directly; they
// hold a Provider and call one of these two methods.
type Provider interface {
	// Invoke sends prompt to the model and returns its raw text response.
	Invoke(ctx context.Context, prompt string, opts InvokeOptions) (string, failure.ClassifiedError)
	// InvokeStructured sends prompt along with a JSON schema the model must
	// answer against, and returns the decoded object. schema is passed
	// through verbatim to the provider; callers own its shape.
	InvokeStructured(ctx context.Context, prompt string, schema map[string]any, opts InvokeOptions) (map[string]any, failure.ClassifiedError)
}

// NewProvider resolves providerName against cfg's endpoints and returns a
// Provider wired to it. An unregistered provider name is a fatal
// configuration error, never a recoverable one.
func NewProvider(providerName string, cfg ProviderConfig) (Provider, failure.ClassifiedError) {
	if providerName == "" {
		return nil, &LLMError{Message: "no provider configured", Cause: ErrCauseUnsupportedProvider}
	}
	endpoint, ok := cfg.Endpoints[providerName]
	if !ok {
		return nil, &LLMError{Message: "provider " + providerName + " has no configured endpoint", Cause: ErrCauseUnsupportedProvider}
	}
	return NewHTTPProvider(endpoint), nil
}

// unmarshalStructuredResponse decodes a provider's raw JSON text payload
// into the generic map InvokeStructured callers expect.
func unmarshalStructuredResponse(raw string, site CallSite) (map[string]any, failure.ClassifiedError) {
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &LLMError{Message: err.Error(), Cause: ErrCauseInvocation, CallSite: site}
	}
	return out, nil
}
