package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// configTemplate is the layout of the generated config file. Save fills it
// with the current values so the explanatory comments survive a TUI save.
const configTemplate = `# Suvarna Prompt Configuration
# This file is automatically generated.
# Edit values as needed - changes are applied immediately without daemon restart.

# General Behavior
[general]
  language = %q  # Input language hint ("auto", "te", "hi", "en", "mixed")
  reset_buffer_on_start = %t  # Clear the previous transcript when recording starts
  grounding = %t  # Ground conversions with web search by default

# Audio Recording Configuration
[recording]
  sample_rate = %d  # Audio sample rate in Hz (the live API expects 16000)
  channels = %d  # Number of audio channels (1 = mono)
  frame_samples = %d  # Samples per frame sent to the live session
  device = %q  # PipeWire audio device (empty = use default microphone)
  channel_buffer_size = %d  # Audio frame buffer size (frames to buffer)
  timeout = %q  # Maximum recording duration (e.g., "30s", "2m", "5m")

# Live Transcription Configuration
[live]
  model = %q  # Gemini Live model name
  endpoint = %q  # Websocket host

# Prompt Conversion Configuration
[convert]
  model = %q  # Gemini model for prompt elaboration
  temperature = %s  # Sampling temperature (0.0 to 2.0)
  max_output_tokens = %d  # Reply token cap

# Translation Preview Configuration
[preview]
  enabled = %t  # Show a quick English translation while recording
  model = %q  # Cheaper model used for previews
  max_output_tokens = %d  # Preview token cap

# Chat Assistant Configuration
[chat]
  provider = %q  # Chat backend ("gemini" or "openai")
  model = %q  # Model name (empty = provider default)
  base_url = %q  # Override API base URL (OpenAI-compatible servers)
  temperature = %s  # Sampling temperature

# History Configuration
[history]
  dir = %q  # Store directory (empty = ~/.local/share/suvarna-prompt/history)
  limit = %d  # Maximum stored entries (0 = unlimited)

# Clipboard Configuration
[clipboard]
  auto_copy = %t  # Copy generated prompts to the clipboard automatically
  timeout = %q  # Timeout for clipboard operations

# Desktop Notification Configuration
[notifications]
  enabled = %t  # Enable desktop notifications
  type = %q  # Notification type ("desktop", "log", "none")

# API keys can live here or in the environment (GEMINI_API_KEY, OPENAI_API_KEY).
# A .env file in the working directory or next to this config is also read.
[providers.gemini]
  api_key = %q

[providers.openai]
  api_key = %q
`

// Save writes the configuration to the config file. The file can hold API
// keys, so it is written with owner-only permissions.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	content := fmt.Sprintf(configTemplate,
		cfg.General.Language,
		cfg.General.ResetBufferOnStart,
		cfg.General.Grounding,
		cfg.Recording.SampleRate,
		cfg.Recording.Channels,
		cfg.Recording.FrameSamples,
		cfg.Recording.Device,
		cfg.Recording.ChannelBufferSize,
		cfg.Recording.Timeout.String(),
		cfg.Live.Model,
		cfg.Live.Endpoint,
		cfg.Convert.Model,
		tomlFloat(cfg.Convert.Temperature),
		cfg.Convert.MaxOutputTokens,
		cfg.Preview.Enabled,
		cfg.Preview.Model,
		cfg.Preview.MaxOutputTokens,
		cfg.Chat.Provider,
		cfg.Chat.Model,
		cfg.Chat.BaseURL,
		tomlFloat(cfg.Chat.Temperature),
		cfg.History.Dir,
		cfg.History.Limit,
		cfg.Clipboard.AutoCopy,
		cfg.Clipboard.Timeout.String(),
		cfg.Notifications.Enabled,
		cfg.Notifications.Type,
		cfg.Providers[provider.Gemini].APIKey,
		cfg.Providers[provider.OpenAI].APIKey,
	)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveDefaultConfig writes a fresh config file with default values.
func SaveDefaultConfig() error {
	return Save(DefaultConfig())
}

// tomlFloat renders a float so TOML parses it back as a float.
func tomlFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
