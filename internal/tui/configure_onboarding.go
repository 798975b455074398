package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// runOnboarding walks a fresh install through the minimum useful setup:
// the Gemini key, the conversion model, the chat backend, notifications.
func runOnboarding(cfg *config.Config) (*ConfigureResult, error) {
	clearScreen()
	fmt.Println(Logo())
	fmt.Println()
	fmt.Println(StyleMuted.Render("Speak Telugu, Hindi or English. Get an elaborated English prompt."))
	fmt.Println(StyleSubtle.Render("Esc cancels at any step; nothing is written until the final save."))
	fmt.Println()

	// one Gemini key drives transcription, conversion and previews
	if err := ensureProviderConfigured(cfg, provider.Gemini); err != nil {
		return &ConfigureResult{Cancelled: true}, nil
	}
	fmt.Println(StyleSuccess.Render("Gemini key configured"))
	fmt.Println()

	if err := selectConversionModel(cfg); err != nil {
		return &ConfigureResult{Cancelled: true}, nil
	}

	if err := selectChatProvider(cfg); err != nil {
		return &ConfigureResult{Cancelled: true}, nil
	}

	enabled, err := confirmNotifications(cfg.Notifications.Enabled)
	if err != nil {
		return &ConfigureResult{Cancelled: true}, nil
	}
	cfg.Notifications.Enabled = enabled

	confirmed, err := showSummary(cfg)
	if err != nil || !confirmed {
		return &ConfigureResult{Cancelled: true}, nil
	}

	return &ConfigureResult{Config: cfg, Cancelled: false}, nil
}

func selectConversionModel(cfg *config.Config) error {
	selectedModel := cfg.Convert.Model
	if selectedModel == "" {
		selectedModel = defaultConversionModel()
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Conversion Model").
				Description("Gemini model that turns speech into an elaborated prompt").
				Options(conversionModelOptions()...).
				Value(&selectedModel),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Convert.Model = selectedModel
	return nil
}

func selectChatProvider(cfg *config.Config) error {
	selectedProvider := cfg.Chat.Provider
	if selectedProvider == "" {
		selectedProvider = provider.Gemini
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Chat Provider").
				Description("Backend for the side chat assistant").
				Options(chatProviderOptions(cfg)...).
				Value(&selectedProvider),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if err := ensureProviderConfigured(cfg, selectedProvider); err != nil {
		return err
	}

	cfg.Chat.Provider = selectedProvider
	return nil
}
