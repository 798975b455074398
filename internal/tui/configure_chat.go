package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// editChat handles the chat assistant section: provider, model and
// temperature.
func editChat(cfg *config.Config) error {
	options := chatProviderOptions(cfg)
	if len(options) == 0 {
		fmt.Println(StyleError.Render("No chat-capable providers are registered."))
		return fmt.Errorf("no chat providers available")
	}

	providerDesc := "Choose which backend answers the chat panel"
	if cfg.Chat.Provider != "" {
		providerDesc = fmt.Sprintf("Currently: %s", cfg.Chat.Provider)
	}

	selectedProvider := cfg.Chat.Provider
	if selectedProvider == "" {
		selectedProvider = provider.Gemini
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Chat Provider").
				Description(providerDesc).
				Options(options...).
				Value(&selectedProvider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}

	if err := ensureProviderConfigured(cfg, selectedProvider); err != nil {
		return err
	}
	cfg.Chat.Provider = selectedProvider

	selectedModel := cfg.Chat.Model
	modelDesc := "Empty keeps the provider default"
	if cfg.Chat.Model != "" {
		modelDesc = fmt.Sprintf("Currently: %s", cfg.Chat.Model)
	}

	temperature := strconv.FormatFloat(cfg.Chat.Temperature, 'f', -1, 64)

	modelForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Chat Model").
				Description(modelDesc).
				Options(chatModelOptions(selectedProvider)...).
				Value(&selectedModel),
			huh.NewInput().
				Title("Temperature").
				Description("Sampling temperature, 0.0 to 2.0").
				Placeholder("0.7").
				Value(&temperature).
				Validate(validateTemperature),
		),
	).WithTheme(getTheme())

	if err := modelForm.Run(); err != nil {
		return err
	}

	cfg.Chat.Model = selectedModel
	cfg.Chat.Temperature, _ = strconv.ParseFloat(temperature, 64)

	return nil
}

// chatProviderOptions lists chat backends with their key status
func chatProviderOptions(cfg *config.Config) []huh.Option[string] {
	var options []huh.Option[string]
	for _, name := range provider.List() {
		p := provider.Get(name)
		if p == nil || len(provider.ModelsOfType(p, provider.Text)) == 0 {
			continue
		}
		label := getProviderDisplayName(name)
		if cfg.ResolveAPIKey(name) == "" {
			label += " (no API key yet)"
		}
		options = append(options, huh.NewOption(label, name))
	}
	return options
}

// chatModelOptions lists a provider's text models, default first
func chatModelOptions(providerName string) []huh.Option[string] {
	p := provider.Get(providerName)
	if p == nil {
		return nil
	}

	options := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("Provider default (%s)", p.DefaultModel(provider.Text)), ""),
	}
	for _, m := range provider.ModelsOfType(p, provider.Text) {
		label := m.ID
		if m.Description != "" {
			label = fmt.Sprintf("%s - %s", m.ID, m.Description)
		}
		options = append(options, huh.NewOption(label, m.ID))
	}
	return options
}
