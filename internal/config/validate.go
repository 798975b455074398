package config

import (
	"fmt"
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

func (c *Config) Validate() error {
	if !language.IsValidCode(c.General.Language) {
		return fmt.Errorf("invalid general.language: %s (must be one of %s)",
			c.General.Language, strings.Join(language.Codes(), ", "))
	}

	if c.Recording.SampleRate <= 0 {
		return fmt.Errorf("invalid recording.sample_rate: %d", c.Recording.SampleRate)
	}
	if c.Recording.Channels <= 0 {
		return fmt.Errorf("invalid recording.channels: %d", c.Recording.Channels)
	}
	if c.Recording.FrameSamples <= 0 {
		return fmt.Errorf("invalid recording.frame_samples: %d", c.Recording.FrameSamples)
	}
	if c.Recording.ChannelBufferSize <= 0 {
		return fmt.Errorf("invalid recording.channel_buffer_size: %d", c.Recording.ChannelBufferSize)
	}
	if c.Recording.Timeout <= 0 {
		return fmt.Errorf("invalid recording.timeout: %v", c.Recording.Timeout)
	}

	if c.Live.Model == "" {
		return fmt.Errorf("invalid live.model: empty")
	}
	if !strings.HasPrefix(c.Live.Endpoint, "wss://") && !strings.HasPrefix(c.Live.Endpoint, "ws://") {
		return fmt.Errorf("invalid live.endpoint: %s (must start with wss:// or ws://)", c.Live.Endpoint)
	}

	if c.Convert.Model == "" {
		return fmt.Errorf("invalid convert.model: empty")
	}
	if c.Convert.Temperature < 0 || c.Convert.Temperature > 2 {
		return fmt.Errorf("invalid convert.temperature: %v (must be between 0.0 and 2.0)", c.Convert.Temperature)
	}
	if c.Convert.MaxOutputTokens <= 0 {
		return fmt.Errorf("invalid convert.max_output_tokens: %d", c.Convert.MaxOutputTokens)
	}

	// Unknown model ids pass so newly released models work without a
	// code change. Known models are checked for language support.
	if m := provider.FindModel(provider.Gemini, c.Convert.Model); m != nil {
		if !m.SupportsLanguage(c.General.Language) {
			return fmt.Errorf("model %s does not support language %q", c.Convert.Model, c.General.Language)
		}
	}

	if c.Preview.Enabled {
		if c.Preview.Model == "" {
			return fmt.Errorf("invalid preview.model: empty (required when preview.enabled = true)")
		}
		if c.Preview.MaxOutputTokens <= 0 {
			return fmt.Errorf("invalid preview.max_output_tokens: %d", c.Preview.MaxOutputTokens)
		}
	}

	if provider.Get(c.Chat.Provider) == nil {
		return fmt.Errorf("invalid chat.provider: %s (must be %s)",
			c.Chat.Provider, strings.Join(provider.List(), " or "))
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("invalid chat.temperature: %v (must be between 0.0 and 2.0)", c.Chat.Temperature)
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("invalid history.limit: %d", c.History.Limit)
	}

	if c.Clipboard.Timeout <= 0 {
		return fmt.Errorf("invalid clipboard.timeout: %v", c.Clipboard.Timeout)
	}

	validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
	if !validTypes[c.Notifications.Type] {
		return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
	}

	// Live transcription and conversion always need the Gemini key.
	if c.ResolveAPIKey(provider.Gemini) == "" {
		return fmt.Errorf("Gemini API key required: not found in config (providers.gemini.api_key) or environment variable (%s)", provider.EnvGeminiKey)
	}
	if c.Chat.Provider == provider.OpenAI && c.ResolveAPIKey(provider.OpenAI) == "" {
		return fmt.Errorf("OpenAI API key required for chat: not found in config (providers.openai.api_key) or environment variable (%s)", provider.EnvOpenAIKey)
	}

	return nil
}
