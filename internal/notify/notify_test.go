package notify

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

var (
	_ Notifier = Desktop{}
	_ Notifier = Log{}
	_ Notifier = Nop{}
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	n := Log{}

	t.Run("recording changed", func(t *testing.T) {
		buf.Reset()
		n.RecordingChanged(true)
		if !strings.Contains(buf.String(), "recording changed: true") {
			t.Errorf("log output = %q, want recording state", buf.String())
		}

		buf.Reset()
		n.RecordingChanged(false)
		if !strings.Contains(buf.String(), "recording changed: false") {
			t.Errorf("log output = %q, want recording state", buf.String())
		}
	})

	t.Run("prompt ready", func(t *testing.T) {
		buf.Reset()
		n.PromptReady("Prompt Ready", "a golden temple at dusk")
		out := buf.String()
		if !strings.Contains(out, "Prompt Ready") || !strings.Contains(out, "a golden temple at dusk") {
			t.Errorf("log output = %q, want title and body", out)
		}
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		n.Error("socket closed")
		if !strings.Contains(buf.String(), "socket closed") {
			t.Errorf("log output = %q, want error message", buf.String())
		}
	})
}

func TestNopNotifier(t *testing.T) {
	n := Nop{}
	n.RecordingChanged(true)
	n.RecordingChanged(false)
	n.PromptReady("title", "body")
	n.Error("msg")
}

func TestNotifierEdgeCases(t *testing.T) {
	notifiers := []Notifier{Log{}, Nop{}}

	t.Run("empty strings", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		for _, n := range notifiers {
			n.PromptReady("", "")
			n.Error("")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		for _, n := range notifiers {
			done := make(chan struct{}, 10)
			for i := 0; i < 10; i++ {
				go func() {
					n.RecordingChanged(true)
					n.PromptReady("title", "body")
					n.Error("msg")
					done <- struct{}{}
				}()
			}
			for i := 0; i < 10; i++ {
				<-done
			}
		}
	})
}
