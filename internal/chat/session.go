package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Session is an ordered conversation log over one adapter. The daemon owns
// a single Session; it is safe for concurrent use and serializes sends so
// the log stays ordered.
type Session struct {
	mu      sync.Mutex
	adapter Adapter
	turns   []Turn
}

// NewSession creates an empty session on adapter.
func NewSession(adapter Adapter) *Session {
	return &Session{adapter: adapter}
}

// Send appends the user message, asks the adapter with the prior turns, and
// appends the reply. On failure the log is left without the failed exchange.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("chat: empty message")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := s.adapter.Chat(ctx, s.turns, message)
	if err != nil {
		return "", err
	}

	s.turns = append(s.turns,
		Turn{Role: RoleUser, Text: message},
		Turn{Role: RoleAssistant, Text: reply},
	)
	return reply, nil
}

// SetAdapter swaps the backend while keeping the conversation log. Used on
// config reloads.
func (s *Session) SetAdapter(adapter Adapter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter = adapter
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of logged turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Reset clears the conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
