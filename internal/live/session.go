package live

import (
	"context"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
)

// EventKind classifies inbound session events.
type EventKind int

const (
	// EventOpen fires once, after the setup handshake completes.
	EventOpen EventKind = iota
	// EventTranscript carries one transcript fragment, in receipt order.
	EventTranscript
	// EventError carries a remote or transport failure.
	EventError
	// EventClosed is always the last event on the channel.
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventTranscript:
		return "transcript"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is one inbound message from the transcription session.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Session is one duplex transcription stream. A session serves exactly one
// recording turn and is never reused.
//
// Open is asynchronous: it returns before the connection resolves. Send
// never blocks the caller on session readiness; chunks submitted before the
// open event are queued in order and flushed on readiness, and chunks
// submitted after close are logged and discarded. CloseSend performs the
// graceful end-of-audio handshake; Close tears the stream down.
type Session interface {
	Open(ctx context.Context) error
	Send(chunk audio.Chunk) error
	CloseSend() error
	Events() <-chan Event
	Close() error
}

// Config for the Gemini Live transcription session.
type Config struct {
	Endpoint string // wss host, no trailing slash
	APIKey   string
	Model    string
}

const (
	DefaultEndpoint = "wss://generativelanguage.googleapis.com"
	DefaultModel    = "gemini-live-2.5-flash"

	// bidiPath is the v1beta bidirectional generation endpoint.
	bidiPath = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
)

func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
	}
}
