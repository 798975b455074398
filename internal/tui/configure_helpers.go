package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
)

// Section menu labels. Each shows the values a user most likely came to
// change.

func formatProvidersLabel(cfg *config.Config) string {
	configured := getConfiguredProviders(cfg)
	if len(configured) == 0 {
		return "Providers (no keys)"
	}
	return fmt.Sprintf("Providers (%s)", strings.Join(configured, ", "))
}

func formatConversionLabel(cfg *config.Config) string {
	lang := language.FromCode(cfg.General.Language)
	return fmt.Sprintf("Conversion (%s, %s)", cfg.Convert.Model, lang.Name)
}

func formatChatLabel(cfg *config.Config) string {
	if cfg.Chat.Model == "" {
		return fmt.Sprintf("Chat (%s)", cfg.Chat.Provider)
	}
	return fmt.Sprintf("Chat (%s/%s)", cfg.Chat.Provider, cfg.Chat.Model)
}

func formatRecordingLabel(cfg *config.Config) string {
	return fmt.Sprintf("Recording (%d Hz, timeout %s)", cfg.Recording.SampleRate, cfg.Recording.Timeout)
}

func formatClipboardLabel(cfg *config.Config) string {
	if cfg.Clipboard.AutoCopy {
		return "Clipboard (auto-copy on)"
	}
	return "Clipboard (auto-copy off)"
}

func formatNotificationsLabel(cfg *config.Config) string {
	if !cfg.Notifications.Enabled {
		return "Notifications (off)"
	}
	return fmt.Sprintf("Notifications (%s)", cfg.Notifications.Type)
}

// showSummary prints the final configuration and asks for confirmation
func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	providers := getConfiguredProviders(cfg)
	if len(providers) == 0 {
		fmt.Printf("  %s none (keys from environment only)\n", StyleLabel.Render("Providers:"))
	} else {
		var masked []string
		for _, name := range providers {
			masked = append(masked, fmt.Sprintf("%s %s", name, maskAPIKey(cfg.Providers[name].APIKey)))
		}
		fmt.Printf("  %s %s\n", StyleLabel.Render("Providers:"), strings.Join(masked, ", "))
	}

	lang := language.FromCode(cfg.General.Language)
	fmt.Printf("  %s %s (language %s, temperature %s)\n",
		StyleLabel.Render("Conversion:"), cfg.Convert.Model, lang.Name,
		strconv.FormatFloat(cfg.Convert.Temperature, 'f', -1, 64))

	if cfg.General.Grounding {
		fmt.Printf("  %s web search on by default\n", StyleLabel.Render("Grounding:"))
	} else {
		fmt.Printf("  %s off by default\n", StyleLabel.Render("Grounding:"))
	}

	if cfg.Preview.Enabled {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Preview:"), cfg.Preview.Model)
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("Preview:"))
	}

	chatModel := cfg.Chat.Model
	if chatModel == "" {
		chatModel = "provider default"
	}
	fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Chat:"), cfg.Chat.Provider, chatModel)

	fmt.Printf("  %s %d Hz, timeout %s\n", StyleLabel.Render("Recording:"), cfg.Recording.SampleRate, cfg.Recording.Timeout)

	if cfg.Clipboard.AutoCopy {
		fmt.Printf("  %s auto-copy enabled\n", StyleLabel.Render("Clipboard:"))
	} else {
		fmt.Printf("  %s auto-copy disabled\n", StyleLabel.Render("Clipboard:"))
	}

	fmt.Printf("  %s %s\n", StyleLabel.Render("Notifications:"), notificationSummary(cfg))

	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// Input validators shared by the section forms.

func validateTemperature(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 0 || v > 2 {
		return fmt.Errorf("must be between 0.0 and 2.0")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateDuration(s string) error {
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("invalid duration format (use '30s', '2m', etc.)")
	}
	return nil
}

func validateWebsocketURL(s string) error {
	if !strings.HasPrefix(s, "wss://") && !strings.HasPrefix(s, "ws://") {
		return fmt.Errorf("must start with wss:// or ws://")
	}
	return nil
}
