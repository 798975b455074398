package audio

import (
	"fmt"
	"time"
)

// Frame is one capture block of normalized mono samples in [-1, 1].
type Frame struct {
	Samples   []float32
	Rate      int
	Timestamp time.Time
}

// Chunk is a transport-ready audio block: base64 PCM16 bytes plus the
// mime tag the receiver needs to interpret them without negotiation.
type Chunk struct {
	Data     string
	MimeType string
}

// MimeType tags raw little-endian PCM16 at the given sample rate.
func MimeType(rate int) string {
	return fmt.Sprintf("audio/pcm;rate=%d", rate)
}
