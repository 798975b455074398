package provider

import "strings"

// OpenAIProvider implements Provider for OpenAI services.
// Only the chat side of the app can use it.
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) RequiresAPIKey() bool {
	return true
}

func (p *OpenAIProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-")
}

func (p *OpenAIProvider) Models() []Model {
	return []Model{
		{
			ID:          "gpt-4o-mini",
			Name:        "GPT-4o Mini",
			Description: "Fast and affordable GPT-4 variant",
			Type:        Text,
		},
		{
			ID:          "gpt-4o",
			Name:        "GPT-4o",
			Description: "Most capable GPT-4 model",
			Type:        Text,
		},
		{
			ID:          "gpt-4.1-mini",
			Name:        "GPT-4.1 Mini",
			Description: "Balanced successor to GPT-4o Mini",
			Type:        Text,
		},
	}
}

func (p *OpenAIProvider) DefaultModel(t ModelType) string {
	if t == Text {
		return "gpt-4o-mini"
	}
	return ""
}
