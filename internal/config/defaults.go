package config

import "time"

func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Language:           "auto",
			ResetBufferOnStart: true,
			Grounding:          false,
		},
		Recording: RecordingConfig{
			SampleRate:        16000,
			Channels:          1,
			FrameSamples:      4096,
			Device:            "",
			ChannelBufferSize: 30,
			Timeout:           5 * time.Minute,
		},
		Live: LiveConfig{
			Model:    "gemini-live-2.5-flash",
			Endpoint: "wss://generativelanguage.googleapis.com",
		},
		Convert: ConvertConfig{
			Model:           "gemini-2.5-flash",
			Temperature:     0.7,
			MaxOutputTokens: 2048,
		},
		Preview: PreviewConfig{
			Enabled:         true,
			Model:           "gemini-2.5-flash-lite",
			MaxOutputTokens: 128,
		},
		Chat: ChatConfig{
			Provider:    "gemini",
			Model:       "", // empty picks the provider default
			BaseURL:     "",
			Temperature: 0.7,
		},
		History: HistoryConfig{
			Dir:   "", // empty resolves under the user data dir
			Limit: 500,
		},
		Clipboard: ClipboardConfig{
			AutoCopy: true,
			Timeout:  3 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "desktop",
		},
		Providers: make(map[string]ProviderConfig),
	}
}
