package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/gemini"
)

// Generator is the slice of the Gemini client the adapter needs.
type Generator interface {
	Generate(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// GeminiAdapter implements Adapter through the Gemini REST client
type GeminiAdapter struct {
	gen    Generator
	config Config
}

// NewGeminiAdapter creates a new Gemini chat adapter
func NewGeminiAdapter(cfg Config) *GeminiAdapter {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiAdapter{
		gen:    gemini.New(cfg.APIKey, model),
		config: cfg,
	}
}

func (a *GeminiAdapter) Name() string { return "gemini" }

func (a *GeminiAdapter) Chat(ctx context.Context, turns []Turn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("chat: empty message")
	}

	start := time.Now()
	resp, err := a.gen.Generate(ctx, gemini.GenerateRequest{
		Contents:    toContents(turns, message),
		System:      chatSystemPrompt,
		Temperature: a.config.Temperature,
	})
	duration := time.Since(start)

	if err != nil {
		log.Printf("gemini-chat-adapter: API call failed after %v: %v", duration, err)
		return "", fmt.Errorf("gemini chat: %w", err)
	}

	log.Printf("gemini-chat-adapter: replied in %v", duration)
	return strings.TrimSpace(resp.Text), nil
}

// toContents maps the chat log to wire contents. The API has no assistant
// role; assistant turns go over as "model".
func toContents(turns []Turn, message string) []gemini.Content {
	contents := make([]gemini.Content, 0, len(turns)+1)
	for _, turn := range turns {
		role := gemini.RoleUser
		if turn.Role == RoleAssistant {
			role = gemini.RoleModel
		}
		contents = append(contents, gemini.Content{Role: role, Text: turn.Text})
	}
	return append(contents, gemini.Content{Role: gemini.RoleUser, Text: message})
}
