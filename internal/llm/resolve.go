package llm

import (
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// NewProviderFromCrawlConfig is the convenience constructor the CLI and
// scheduler use: it loads configPath (if set) and resolves providerName
// against it in one step. A provider name with no config file is a fatal
// error, since HTTPProvider has no endpoint to call without one.
func NewProviderFromCrawlConfig(providerName string, configPath string) (Provider, ProviderConfig, failure.ClassifiedError) {
	if configPath == "" {
		return nil, ProviderConfig{}, &LLMError{
			Message: "provider " + providerName + " requires --llm-config",
			Cause:   ErrCauseUnsupportedProvider,
		}
	}

	cfg, err := LoadConfigFile(configPath)
	if err != nil {
		return nil, ProviderConfig{}, &LLMError{Message: err.Error(), Cause: ErrCauseUnsupportedProvider}
	}

	provider, provErr := NewProvider(providerName, cfg)
	if provErr != nil {
		return nil, ProviderConfig{}, provErr
	}
	return provider, cfg, nil
}
