// Package chat runs the side assistant conversation used to discuss and
// refine prompts without touching the recording pipeline.
package chat

import (
	"context"
	"fmt"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one half of an exchange in the conversation log.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Adapter interface for chat backends
type Adapter interface {
	Name() string
	// Chat sends message with the prior turns applied strictly in order
	// and returns the assistant reply.
	Chat(ctx context.Context, turns []Turn, message string) (string, error)
}

// Config holds chat adapter configuration
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // openai only: any OpenAI-compatible endpoint
	Temperature float64
}

// NewAdapter creates a chat adapter based on the provider
func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key required")
		}
		return NewGeminiAdapter(cfg), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", cfg.Provider)
	}
}

// chatSystemPrompt frames the assistant around prompt writing.
const chatSystemPrompt = "You are the assistant inside a voice prompt studio. " +
	"The user drafts image and video generation prompts by voice, in Telugu, Hindi, English, or a mix. " +
	"Help them refine prompts, suggest styles, subjects and compositions, and answer short questions. " +
	"Keep replies brief and practical."
