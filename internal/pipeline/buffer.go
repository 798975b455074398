package pipeline

import (
	"strings"
	"sync"
)

// TurnBuffer accumulates transcript fragments for a recording turn.
// Fragments are kept verbatim in arrival order; the transcript is their
// plain concatenation. Safe for concurrent use.
type TurnBuffer struct {
	mu        sync.Mutex
	fragments []string
}

func NewTurnBuffer() *TurnBuffer {
	return &TurnBuffer{}
}

// Append adds one fragment at the end. No trimming, no deduplication,
// no reordering.
func (b *TurnBuffer) Append(fragment string) {
	b.mu.Lock()
	b.fragments = append(b.fragments, fragment)
	b.mu.Unlock()
}

// Text returns the concatenated transcript so far.
func (b *TurnBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.fragments, "")
}

// Len reports how many fragments have been received.
func (b *TurnBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.fragments)
}

// Reset discards everything accumulated so far.
func (b *TurnBuffer) Reset() {
	b.mu.Lock()
	b.fragments = nil
	b.mu.Unlock()
}
