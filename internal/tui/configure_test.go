package tui

import (
	"strings"
	"testing"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"empty", "", "***"},
		{"short", "sk-12", "***"},
		{"exactly eight", "12345678", "***"},
		{"long gemini style", "AIzaSyExampleKey1234", "AIzaSyE...1234"},
		{"long openai style", "sk-proj-abcdefgh5678", "sk-proj...5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.key); got != tt.want {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestHasUserChanges(t *testing.T) {
	cfg := config.DefaultConfig()
	if hasUserChanges(cfg) {
		t.Error("default config should have no user changes")
	}

	cfg.Providers = map[string]config.ProviderConfig{
		"gemini": {APIKey: ""},
		"openai": {APIKey: ""},
	}
	if hasUserChanges(cfg) {
		t.Error("empty provider tables from the generated template are not user changes")
	}

	cfg.Providers["gemini"] = config.ProviderConfig{APIKey: "AIzaSyExampleKey1234"}
	if !hasUserChanges(cfg) {
		t.Error("a stored API key should count as a user change")
	}
}

func TestGetConfiguredProviders(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := getConfiguredProviders(cfg); len(got) != 0 {
		t.Errorf("getConfiguredProviders(default) = %v, want empty", got)
	}

	cfg.Providers = map[string]config.ProviderConfig{
		"openai": {APIKey: "sk-proj-abcdefgh5678"},
		"gemini": {APIKey: "AIzaSyExampleKey1234"},
	}

	got := getConfiguredProviders(cfg)
	if len(got) != 2 || got[0] != "gemini" || got[1] != "openai" {
		t.Errorf("getConfiguredProviders() = %v, want [gemini openai] in registry order", got)
	}
}

func TestFormatProviderOption(t *testing.T) {
	cfg := config.DefaultConfig()

	if got := formatProviderOption(cfg, provider.Gemini); !strings.Contains(got, "(not configured)") {
		t.Errorf("formatProviderOption without key = %q, want (not configured)", got)
	}

	cfg.Providers = map[string]config.ProviderConfig{
		provider.Gemini: {APIKey: "AIzaSyExampleKey1234"},
	}
	if got := formatProviderOption(cfg, provider.Gemini); !strings.Contains(got, "(configured)") {
		t.Errorf("formatProviderOption with key = %q, want (configured)", got)
	}
}

func TestConversionModelOptions(t *testing.T) {
	options := conversionModelOptions()

	p := provider.Get(provider.Gemini)
	want := provider.ModelsOfType(p, provider.Text)
	if len(options) != len(want) {
		t.Fatalf("conversionModelOptions() returned %d options, want %d", len(options), len(want))
	}

	def := p.DefaultModel(provider.Text)
	foundDefault := false
	for i, opt := range options {
		if opt.Value != want[i].ID {
			t.Errorf("option[%d].Value = %q, want %q", i, opt.Value, want[i].ID)
		}
		if opt.Value == def {
			foundDefault = true
			if !strings.Contains(opt.Key, "(recommended)") {
				t.Errorf("default model option %q should be marked recommended", opt.Key)
			}
		}
	}
	if !foundDefault {
		t.Errorf("default model %s missing from options", def)
	}
}

func TestChatModelOptions(t *testing.T) {
	options := chatModelOptions(provider.Gemini)
	if len(options) == 0 {
		t.Fatal("chatModelOptions(gemini) returned no options")
	}
	if options[0].Value != "" {
		t.Errorf("first option should be the provider default with empty value, got %q", options[0].Value)
	}
	if !strings.Contains(options[0].Key, "Provider default") {
		t.Errorf("first option key = %q, want a provider default label", options[0].Key)
	}

	p := provider.Get(provider.OpenAI)
	textModels := provider.ModelsOfType(p, provider.Text)
	openaiOptions := chatModelOptions(provider.OpenAI)
	if len(openaiOptions) != len(textModels)+1 {
		t.Errorf("chatModelOptions(openai) returned %d options, want %d", len(openaiOptions), len(textModels)+1)
	}

	if got := chatModelOptions("no-such-provider"); got != nil {
		t.Errorf("chatModelOptions(unknown) = %v, want nil", got)
	}
}

func TestChatProviderOptions(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	cfg := config.DefaultConfig()

	options := chatProviderOptions(cfg)
	if len(options) != 2 {
		t.Fatalf("chatProviderOptions() returned %d options, want 2", len(options))
	}
	for _, opt := range options {
		if !strings.Contains(opt.Key, "(no API key yet)") {
			t.Errorf("option %q should flag the missing key", opt.Key)
		}
	}

	cfg.Providers = map[string]config.ProviderConfig{
		provider.Gemini: {APIKey: "AIzaSyExampleKey1234"},
	}
	options = chatProviderOptions(cfg)
	if strings.Contains(options[0].Key, "(no API key yet)") {
		t.Errorf("gemini option %q should not flag a missing key once configured", options[0].Key)
	}
}

func TestLanguageOptions(t *testing.T) {
	options := languageOptions()

	wantValues := []string{"auto", "te", "hi", "en", "mixed"}
	if len(options) != len(wantValues) {
		t.Fatalf("languageOptions() returned %d options, want %d", len(options), len(wantValues))
	}
	for i, opt := range options {
		if opt.Value != wantValues[i] {
			t.Errorf("option[%d].Value = %q, want %q", i, opt.Value, wantValues[i])
		}
	}

	if !strings.Contains(options[1].Key, "తెలుగు") {
		t.Errorf("Telugu option %q should show the native name", options[1].Key)
	}
}

func TestSectionLabels(t *testing.T) {
	cfg := config.DefaultConfig()

	if got := formatProvidersLabel(cfg); got != "Providers (no keys)" {
		t.Errorf("formatProvidersLabel(default) = %q", got)
	}
	if got := formatConversionLabel(cfg); !strings.Contains(got, cfg.Convert.Model) {
		t.Errorf("formatConversionLabel() = %q, want the model name", got)
	}
	if got := formatChatLabel(cfg); got != "Chat (gemini)" {
		t.Errorf("formatChatLabel(default) = %q, want Chat (gemini)", got)
	}

	cfg.Chat.Model = "gpt-4o"
	cfg.Chat.Provider = "openai"
	if got := formatChatLabel(cfg); got != "Chat (openai/gpt-4o)" {
		t.Errorf("formatChatLabel() = %q, want Chat (openai/gpt-4o)", got)
	}

	cfg.Notifications.Enabled = false
	if got := formatNotificationsLabel(cfg); got != "Notifications (off)" {
		t.Errorf("formatNotificationsLabel(disabled) = %q", got)
	}
}

func TestValidators(t *testing.T) {
	if err := validateTemperature("0.7"); err != nil {
		t.Errorf("validateTemperature(0.7) = %v", err)
	}
	if err := validateTemperature("2.5"); err == nil {
		t.Error("validateTemperature(2.5) should fail")
	}
	if err := validateTemperature("warm"); err == nil {
		t.Error("validateTemperature(warm) should fail")
	}

	if err := validatePositiveInt("4096"); err != nil {
		t.Errorf("validatePositiveInt(4096) = %v", err)
	}
	if err := validatePositiveInt("0"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}

	if err := validateNonNegativeInt("0"); err != nil {
		t.Errorf("validateNonNegativeInt(0) = %v", err)
	}
	if err := validateNonNegativeInt("-1"); err == nil {
		t.Error("validateNonNegativeInt(-1) should fail")
	}

	if err := validateDuration("5m"); err != nil {
		t.Errorf("validateDuration(5m) = %v", err)
	}
	if err := validateDuration("soon"); err == nil {
		t.Error("validateDuration(soon) should fail")
	}

	if err := validateWebsocketURL("wss://generativelanguage.googleapis.com"); err != nil {
		t.Errorf("validateWebsocketURL(wss) = %v", err)
	}
	if err := validateWebsocketURL("https://example.com"); err == nil {
		t.Error("validateWebsocketURL(https) should fail")
	}
}
