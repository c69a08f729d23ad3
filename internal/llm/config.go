package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type callSiteSettingsDTO struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Timeout  string `json:"timeout,omitempty"`
}

type providerConfigDTO struct {
	Endpoints       map[string]string              `json:"endpoints"`
	DefaultProvider string                          `json:"defaultProvider"`
	DefaultModel    string                          `json:"defaultModel"`
	DefaultTimeout  string                          `json:"defaultTimeout"`
	CallSites       map[CallSite]callSiteSettingsDTO `json:"callSites,omitempty"`
}

// LoadConfigFile parses a --llm-config JSON file into a ProviderConfig.
func LoadConfigFile(path string) (ProviderConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("reading llm config: %w", err)
	}

	var dto providerConfigDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return ProviderConfig{}, fmt.Errorf("parsing llm config: %w", err)
	}

	defaultTimeout, err := parseDuration(dto.DefaultTimeout, 30*time.Second)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parsing defaultTimeout: %w", err)
	}

	cfg := ProviderConfig{
		Endpoints:       dto.Endpoints,
		DefaultProvider: dto.DefaultProvider,
		DefaultModel:    dto.DefaultModel,
		DefaultTimeout:  defaultTimeout,
		CallSites:       map[CallSite]CallSiteSettings{},
	}

	for site, settings := range dto.CallSites {
		timeout, err := parseDuration(settings.Timeout, 0)
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("parsing callSites[%s].timeout: %w", site, err)
		}
		cfg.CallSites[site] = CallSiteSettings{
			Provider: settings.Provider,
			Model:    settings.Model,
			Timeout:  timeout,
		}
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
