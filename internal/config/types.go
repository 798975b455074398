package config

import "time"

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Recording     RecordingConfig           `toml:"recording"`
	Live          LiveConfig                `toml:"live"`
	Convert       ConvertConfig             `toml:"convert"`
	Preview       PreviewConfig             `toml:"preview"`
	Chat          ChatConfig                `toml:"chat"`
	History       HistoryConfig             `toml:"history"`
	Clipboard     ClipboardConfig           `toml:"clipboard"`
	Notifications NotificationsConfig       `toml:"notifications"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

type GeneralConfig struct {
	Language           string `toml:"language"`
	ResetBufferOnStart bool   `toml:"reset_buffer_on_start"`
	Grounding          bool   `toml:"grounding"`
}

type RecordingConfig struct {
	SampleRate        int           `toml:"sample_rate"`
	Channels          int           `toml:"channels"`
	FrameSamples      int           `toml:"frame_samples"`
	Device            string        `toml:"device"`
	ChannelBufferSize int           `toml:"channel_buffer_size"`
	Timeout           time.Duration `toml:"timeout"`
}

type LiveConfig struct {
	Model    string `toml:"model"`
	Endpoint string `toml:"endpoint"`
}

type ConvertConfig struct {
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
}

type PreviewConfig struct {
	Enabled         bool   `toml:"enabled"`
	Model           string `toml:"model"`
	MaxOutputTokens int    `toml:"max_output_tokens"`
}

type ChatConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	Temperature float64 `toml:"temperature"`
}

type HistoryConfig struct {
	Dir   string `toml:"dir"`
	Limit int    `toml:"limit"`
}

type ClipboardConfig struct {
	AutoCopy bool          `toml:"auto_copy"`
	Timeout  time.Duration `toml:"timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}

// ProviderConfig holds the per-provider credentials table
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}
