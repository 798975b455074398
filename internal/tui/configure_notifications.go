package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
)

// editNotifications handles the notifications section edit
func editNotifications(cfg *config.Config) error {
	enabled, err := confirmNotifications(cfg.Notifications.Enabled)
	if err != nil {
		return err
	}

	cfg.Notifications.Enabled = enabled
	if !enabled {
		return nil
	}

	notifType := cfg.Notifications.Type
	if notifType == "" {
		notifType = "desktop"
	}

	typeOptions := []huh.Option[string]{
		huh.NewOption("Desktop notifications (notify-send)", "desktop"),
		huh.NewOption("Log to console only", "log"),
		huh.NewOption("None (silent)", "none"),
	}

	typeForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Notification Type").
				Description("How should notifications be displayed?").
				Options(typeOptions...).
				Value(&notifType),
		),
	).WithTheme(getTheme())

	if err := typeForm.Run(); err != nil {
		return err
	}

	cfg.Notifications.Type = notifType

	return nil
}

// confirmNotifications asks whether notifications should be on at all.
// Shared between the section edit and the onboarding flow.
func confirmNotifications(existingEnabled bool) (bool, error) {
	enabled := existingEnabled

	desc := "Show notifications for recording changes and finished prompts"
	if existingEnabled {
		desc = "Currently: enabled. " + desc
	} else {
		desc = "Currently: disabled. " + desc
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable desktop notifications?").
				Description(desc).
				Value(&enabled),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return enabled, nil
}

// notificationSummary renders the notifications state for the summary view
func notificationSummary(cfg *config.Config) string {
	if !cfg.Notifications.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("enabled (%s)", cfg.Notifications.Type)
}
