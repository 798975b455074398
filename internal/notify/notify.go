package notify

import (
	"fmt"
	"log"
	"os/exec"
)

type Notifier interface {
	RecordingChanged(on bool)
	PromptReady(title, body string)
	Error(msg string)
}

type Desktop struct{}

func (Desktop) RecordingChanged(on bool) {
	state := "Stopped"
	if on {
		state = "Started"
	}
	cmd := exec.Command("notify-send", "-a", "Suvarna Prompt",
		fmt.Sprintf("Suvarna Prompt: %s Recording", state))
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

func (Desktop) PromptReady(title, body string) {
	cmd := exec.Command("notify-send", "-a", "Suvarna Prompt", title, body)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

func (Desktop) Error(msg string) {
	cmd := exec.Command("notify-send", "-a", "Suvarna Prompt", "-u", "critical", msg)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send error notification: %v", err)
	}
}

// Log mirrors notifications into the daemon log. Useful when no
// notification daemon is running.
type Log struct{}

func (Log) RecordingChanged(on bool) {
	log.Printf("notify: recording changed: %v", on)
}

func (Log) PromptReady(title, body string) {
	log.Printf("notify: %s: %s", title, body)
}

func (Log) Error(msg string) {
	log.Printf("notify: error: %s", msg)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) RecordingChanged(on bool)       {}
func (Nop) PromptReady(title, body string) {}
func (Nop) Error(msg string)               {}
