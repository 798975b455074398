package provider

import (
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
)

// GeminiProvider implements Provider for Google Gemini services
type GeminiProvider struct{}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) RequiresAPIKey() bool {
	return true
}

func (p *GeminiProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "AIza")
}

func (p *GeminiProvider) Models() []Model {
	langs := language.Codes()

	return []Model{
		// live transcription models
		{
			ID:                 "gemini-live-2.5-flash",
			Name:               "Gemini Live 2.5 Flash",
			Description:        "Realtime speech transcription over websocket",
			Type:               Live,
			SupportedLanguages: langs,
		},
		{
			ID:                 "gemini-2.0-flash-live-001",
			Name:               "Gemini 2.0 Flash Live",
			Description:        "Previous generation live model",
			Type:               Live,
			SupportedLanguages: langs,
		},
		// text models
		{
			ID:                 "gemini-2.5-flash",
			Name:               "Gemini 2.5 Flash",
			Description:        "Fast general model, good default for prompt conversion",
			Type:               Text,
			SupportedLanguages: langs,
		},
		{
			ID:                 "gemini-2.5-pro",
			Name:               "Gemini 2.5 Pro",
			Description:        "Most capable, slower and pricier",
			Type:               Text,
			SupportedLanguages: langs,
		},
		{
			ID:                 "gemini-2.5-flash-lite",
			Name:               "Gemini 2.5 Flash Lite",
			Description:        "Cheapest and fastest, used for previews",
			Type:               Text,
			SupportedLanguages: langs,
		},
	}
}

func (p *GeminiProvider) DefaultModel(t ModelType) string {
	switch t {
	case Live:
		return "gemini-live-2.5-flash"
	case Text:
		return "gemini-2.5-flash"
	}
	return ""
}
