package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/chat"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/convert"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/injection"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/live"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/pipeline"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/recording"
)

func (c *Config) ToRecordingConfig() recording.Config {
	return recording.Config{
		SampleRate:        c.Recording.SampleRate,
		Channels:          c.Recording.Channels,
		FrameSamples:      c.Recording.FrameSamples,
		Device:            c.Recording.Device,
		ChannelBufferSize: c.Recording.ChannelBufferSize,
	}
}

func (c *Config) ToLiveConfig() live.Config {
	config := live.Config{
		Endpoint: c.Live.Endpoint,
		Model:    c.Live.Model,
	}

	config.APIKey = c.ResolveAPIKey(provider.Gemini)

	return config
}

func (c *Config) ToPipelineConfig() pipeline.Config {
	config := pipeline.DefaultConfig()
	config.MaxDuration = c.Recording.Timeout
	config.ResetBufferOnStart = c.General.ResetBufferOnStart
	return config
}

func (c *Config) ToConvertConfig() convert.Config {
	return convert.Config{
		Language:    c.General.Language,
		Temperature: c.Convert.Temperature,
		MaxTokens:   c.Convert.MaxOutputTokens,
	}
}

// ToPreviewConfig converts to the converter config used for live previews,
// which run on their own model with a tighter output cap.
func (c *Config) ToPreviewConfig() convert.Config {
	return convert.Config{
		Language:         c.General.Language,
		PreviewMaxTokens: c.Preview.MaxOutputTokens,
	}
}

func (c *Config) ToChatConfig() chat.Config {
	config := chat.Config{
		Provider:    c.Chat.Provider,
		Model:       c.Chat.Model,
		BaseURL:     c.Chat.BaseURL,
		Temperature: c.Chat.Temperature,
	}

	config.APIKey = c.ResolveAPIKey(c.Chat.Provider)

	return config
}

func (c *Config) ToInjectionConfig() injection.Config {
	return injection.Config{
		Timeout: c.Clipboard.Timeout,
		Verify:  true,
	}
}

// ResolveAPIKey returns the API key for a provider from the providers
// table, falling back to the provider's environment variable.
func (c *Config) ResolveAPIKey(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarFor(providerName); envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}

// HistoryDir resolves the history store directory. An empty setting
// lands under the XDG data dir.
func (c *Config) HistoryDir() (string, error) {
	dir := c.History.Dir
	if dir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get user home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(base, "suvarna-prompt", "history"), nil
	}

	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	return dir, nil
}
