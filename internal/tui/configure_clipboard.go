package tui

import (
	"time"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
)

// editClipboard handles clipboard delivery settings
func editClipboard(cfg *config.Config) error {
	autoCopy := cfg.Clipboard.AutoCopy
	timeout := cfg.Clipboard.Timeout.String()

	desc := "Copy every converted prompt to the clipboard"
	if cfg.Clipboard.AutoCopy {
		desc = "Currently: enabled. " + desc
	} else {
		desc = "Currently: disabled. " + desc
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Copy prompts automatically?").
				Description(desc).
				Value(&autoCopy),
			huh.NewInput().
				Title("Clipboard Timeout").
				Description("Timeout for wl-copy operations (e.g., '3s', '5s')").
				Placeholder("3s").
				Value(&timeout).
				Validate(validateDuration),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Clipboard.AutoCopy = autoCopy
	cfg.Clipboard.Timeout, _ = time.ParseDuration(timeout)

	return nil
}
