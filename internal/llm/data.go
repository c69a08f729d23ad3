package llm

import "time"

/*
Responsibilities

- Define the single LLMProvider contract every crawl mode calls through
- Resolve per-call-site provider/model/timeout overrides from a config file
- Classify provider failures for the caller's retry/fail-open decisions

Knows nothing about crawling, classification prompts, or tool semantics -
those live in the packages that call it (linkgate, agentcrawler).
*/

// CallSite names one of the fixed points in the crawl pipeline that may
// invoke an LLMProvider. Callers select settings (provider/model/timeout)
// per call site via ProviderConfig.Resolve.
type CallSite string

const (
	CallSiteLinkClassifier        CallSite = "link-classifier"
	CallSiteLinkClassifierPerLink CallSite = "link-classifier-per-link"
	CallSiteConversionStrategySel CallSite = "conversion-strategy-selector"
	CallSiteConversionOptimizer   CallSite = "conversion-optimizer"
	CallSiteAgentRouter           CallSite = "agent-router"
	CallSitePageSummarizer        CallSite = "page-summarizer"
	CallSiteIndexGenerator        CallSite = "index-generator"
)

// InvokeOptions carries the call site an invocation is made on behalf of,
// so Resolve can pick the right provider/model/timeout for it.
type InvokeOptions struct {
	CallSite CallSite
}

// CallSiteSettings is the fully-resolved configuration for one call site:
// provider name, model identifier, and request timeout.
type CallSiteSettings struct {
	Provider string
	Model    string
	Timeout  time.Duration
}

// ProviderConfig is the parsed shape of a --llm-config file: a default
// provider/model/timeout plus optional per-call-site overrides.
type ProviderConfig struct {
	Endpoints       map[string]string
	DefaultProvider string
	DefaultModel    string
	DefaultTimeout  time.Duration
	CallSites       map[CallSite]CallSiteSettings
}

// Resolve merges a call site's override (if any) over the config's
// defaults, so every recognized call site always has provider/model/
// timeout even when the config file only specifies defaults.
func (p ProviderConfig) Resolve(site CallSite) CallSiteSettings {
	settings := CallSiteSettings{
		Provider: p.DefaultProvider,
		Model:    p.DefaultModel,
		Timeout:  p.DefaultTimeout,
	}
	override, ok := p.CallSites[site]
	if !ok {
		return settings
	}
	if override.Provider != "" {
		settings.Provider = override.Provider
	}
	if override.Model != "" {
		settings.Model = override.Model
	}
	if override.Timeout != 0 {
		settings.Timeout = override.Timeout
	}
	return settings
}
