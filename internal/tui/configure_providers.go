package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// getProviderDisplayName returns the display name for a provider
func getProviderDisplayName(providerName string) string {
	if name, ok := providerDisplayNames[providerName]; ok {
		return name
	}
	return providerName
}

// maskAPIKey returns a masked version of an API key for display
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

// getConfiguredProviders returns the providers with a stored API key,
// in registry order.
func getConfiguredProviders(cfg *config.Config) []string {
	var providers []string
	for _, name := range provider.List() {
		if pc, ok := cfg.Providers[name]; ok && pc.APIKey != "" {
			providers = append(providers, name)
		}
	}
	return providers
}

// editProviders handles the provider key submenu
func editProviders(cfg *config.Config) error {
	// jump to "Done" once a key has been entered
	defaultToExit := false

	for {
		var options []huh.Option[string]
		for _, name := range provider.List() {
			options = append(options, huh.NewOption(formatProviderOption(cfg, name), name))
		}
		options = append(options, huh.NewOption("Done", "back"))

		selected := ""
		if defaultToExit {
			selected = "back"
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Provider Settings").
					Description("Select a provider to configure its API key").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil {
			return err
		}

		if selected == "back" {
			return nil
		}

		apiKey, err := configureSingleProvider(cfg, selected)
		if err != nil {
			continue
		}

		if apiKey != "" {
			if cfg.Providers == nil {
				cfg.Providers = make(map[string]config.ProviderConfig)
			}
			cfg.Providers[selected] = config.ProviderConfig{APIKey: apiKey}
			defaultToExit = true
		}
	}
}

// formatProviderOption formats a provider menu option with its status
func formatProviderOption(cfg *config.Config, name string) string {
	status := "(not configured)"
	if pc, ok := cfg.Providers[name]; ok && pc.APIKey != "" {
		status = "(configured)"
	}

	switch name {
	case provider.Gemini:
		return fmt.Sprintf("Google Gemini - transcription, prompts, chat %s", status)
	case provider.OpenAI:
		return fmt.Sprintf("OpenAI - chat assistant %s", status)
	default:
		return fmt.Sprintf("%s %s", name, status)
	}
}

// configureSingleProvider returns the new API key for a provider, or ""
// when the existing key is kept.
func configureSingleProvider(cfg *config.Config, providerName string) (string, error) {
	displayName := getProviderDisplayName(providerName)

	if pc, ok := cfg.Providers[providerName]; ok && pc.APIKey != "" {
		update := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("%s key: %s", displayName, maskAPIKey(pc.APIKey))).
					Description("Replace the stored API key?").
					Affirmative("Update key").
					Negative("Keep current").
					Value(&update),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil {
			return "", err
		}
		if !update {
			return "", nil
		}
	}

	return inputAPIKey(providerName)
}

func inputAPIKey(providerName string) (string, error) {
	p := provider.Get(providerName)
	displayName := getProviderDisplayName(providerName)

	var apiKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s API Key", displayName)).
				Description(fmt.Sprintf("Enter your %s API key", displayName)).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("API key is required")
					}
					if p != nil && !p.ValidateAPIKey(s) {
						return fmt.Errorf("invalid API key format for %s", displayName)
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}

	return apiKey, nil
}

// ensureProviderConfigured prompts for an API key unless one is already
// stored or present in the environment.
func ensureProviderConfigured(cfg *config.Config, providerName string) error {
	if cfg.ResolveAPIKey(providerName) != "" {
		return nil
	}

	apiKey, err := inputAPIKey(providerName)
	if err != nil {
		return err
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.ProviderConfig)
	}
	cfg.Providers[providerName] = config.ProviderConfig{APIKey: apiKey}
	return nil
}
