// Package injection delivers converted prompts to the Wayland clipboard.
package injection

import (
	"context"
	"fmt"
	"time"
)

// Injector interface for prompt delivery
type Injector interface {
	// Copy places text on the clipboard.
	Copy(ctx context.Context, text string) error
	// Paste returns the current clipboard content.
	Paste(ctx context.Context) (string, error)
}

// Config for clipboard delivery
type Config struct {
	Timeout time.Duration // per wl-copy / wl-paste invocation
	Verify  bool          // read the clipboard back after copying
}

// DefaultConfig returns sensible defaults for delivery
func DefaultConfig() Config {
	return Config{
		Timeout: 3 * time.Second,
		Verify:  true,
	}
}

// clipboard implements Injector over wl-clipboard
type clipboard struct {
	config Config
}

// NewInjector creates a new clipboard injector with the given config
func NewInjector(config Config) Injector {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return &clipboard{config: config}
}

// NewDefaultInjector creates an injector with default configuration
func NewDefaultInjector() Injector {
	return NewInjector(DefaultConfig())
}

func (c *clipboard) Copy(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("cannot copy empty text")
	}

	if err := checkClipboardAvailable(); err != nil {
		return fmt.Errorf("clipboard tools not available: %w", err)
	}

	if err := setClipboard(ctx, text, c.config.Timeout); err != nil {
		return fmt.Errorf("failed to copy text to clipboard: %w", err)
	}

	if c.config.Verify {
		got, err := getClipboard(ctx, c.config.Timeout)
		if err != nil {
			return fmt.Errorf("failed to verify clipboard: %w", err)
		}
		if got != text {
			return fmt.Errorf("clipboard verification failed: content mismatch")
		}
	}

	return nil
}

func (c *clipboard) Paste(ctx context.Context) (string, error) {
	if err := checkClipboardAvailable(); err != nil {
		return "", fmt.Errorf("clipboard tools not available: %w", err)
	}
	return getClipboard(ctx, c.config.Timeout)
}
