package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// AdvancedSection represents a section in the advanced settings menu
type AdvancedSection string

const (
	AdvancedPreview   AdvancedSection = "preview"
	AdvancedHistory   AdvancedSection = "history"
	AdvancedEndpoints AdvancedSection = "endpoints"
	AdvancedBack      AdvancedSection = "back"
)

// editAdvanced handles the advanced settings submenu
func editAdvanced(cfg *config.Config) error {
	for {
		options := []huh.Option[AdvancedSection]{
			huh.NewOption(formatPreviewLabel(cfg), AdvancedPreview),
			huh.NewOption(formatHistoryLabel(cfg), AdvancedHistory),
			huh.NewOption("Endpoints & Live Model", AdvancedEndpoints),
			huh.NewOption("Back to Main Menu", AdvancedBack),
		}

		var selected AdvancedSection
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[AdvancedSection]().
					Title("Advanced Settings").
					Description("↑/↓ navigate • enter select • esc back").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil {
			return err
		}

		switch selected {
		case AdvancedBack:
			return nil

		case AdvancedPreview:
			if err := editPreview(cfg); err != nil {
				continue
			}

		case AdvancedHistory:
			if err := editHistory(cfg); err != nil {
				continue
			}

		case AdvancedEndpoints:
			if err := editEndpoints(cfg); err != nil {
				continue
			}
		}
	}
}

func formatPreviewLabel(cfg *config.Config) string {
	if !cfg.Preview.Enabled {
		return "Translation Preview (disabled)"
	}
	return fmt.Sprintf("Translation Preview (%s)", cfg.Preview.Model)
}

func formatHistoryLabel(cfg *config.Config) string {
	return fmt.Sprintf("History (limit %d)", cfg.History.Limit)
}

// editPreview handles the live translation preview settings
func editPreview(cfg *config.Config) error {
	enabled := cfg.Preview.Enabled

	enableForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show live translation previews?").
				Description("A cheap model translates the transcript while you speak").
				Value(&enabled),
		),
	).WithTheme(getTheme())

	if err := enableForm.Run(); err != nil {
		return err
	}

	cfg.Preview.Enabled = enabled
	if !enabled {
		return nil
	}

	selectedModel := cfg.Preview.Model
	maxTokens := strconv.Itoa(cfg.Preview.MaxOutputTokens)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preview Model").
				Description(fmt.Sprintf("Currently: %s", cfg.Preview.Model)).
				Options(conversionModelOptions()...).
				Value(&selectedModel),
			huh.NewInput().
				Title("Preview Max Tokens").
				Description("Output cap; previews only need a sentence or two").
				Placeholder("128").
				Value(&maxTokens).
				Validate(validatePositiveInt),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Preview.Model = selectedModel
	cfg.Preview.MaxOutputTokens, _ = strconv.Atoi(maxTokens)

	return nil
}

// editHistory handles the history store settings
func editHistory(cfg *config.Config) error {
	dir := cfg.History.Dir
	limit := strconv.Itoa(cfg.History.Limit)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History Directory").
				Description("Empty stores under ~/.local/share/suvarna-prompt/history").
				Placeholder("(default)").
				Value(&dir),
			huh.NewInput().
				Title("History Limit").
				Description("Maximum stored entries; 0 keeps everything").
				Placeholder("500").
				Value(&limit).
				Validate(validateNonNegativeInt),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.History.Dir = dir
	cfg.History.Limit, _ = strconv.Atoi(limit)

	return nil
}

// editEndpoints handles the live model, the websocket host and the chat
// base URL override.
func editEndpoints(cfg *config.Config) error {
	liveModel := cfg.Live.Model
	endpoint := cfg.Live.Endpoint
	baseURL := cfg.Chat.BaseURL

	p := provider.Get(provider.Gemini)
	var liveOptions []huh.Option[string]
	for _, m := range provider.ModelsOfType(p, provider.Live) {
		label := m.ID
		if m.Description != "" {
			label = fmt.Sprintf("%s - %s", m.ID, m.Description)
		}
		liveOptions = append(liveOptions, huh.NewOption(label, m.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Live Transcription Model").
				Description(fmt.Sprintf("Currently: %s", cfg.Live.Model)).
				Options(liveOptions...).
				Value(&liveModel),
			huh.NewInput().
				Title("Live Endpoint").
				Description("Websocket host for the live session").
				Placeholder("wss://generativelanguage.googleapis.com").
				Value(&endpoint).
				Validate(validateWebsocketURL),
			huh.NewInput().
				Title("Chat Base URL").
				Description("OpenAI-compatible server override. Empty uses the official API.").
				Placeholder("(official)").
				Value(&baseURL),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Live.Model = liveModel
	cfg.Live.Endpoint = endpoint
	cfg.Chat.BaseURL = baseURL

	return nil
}
