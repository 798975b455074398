package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
)

// Encode converts a frame to a base64 PCM16 chunk: clamp to [-1, 1],
// scale by 32767 with truncation, pack little-endian. Pure; exactly
// 2 bytes per sample before the text encoding.
func Encode(f Frame) Chunk {
	pcm := make([]byte, 2*len(f.Samples))
	for i, s := range f.Samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}
	return Chunk{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MimeType: MimeType(f.Rate),
	}
}

// SamplesFromBytes reinterprets raw little-endian f32 bytes as samples.
// Trailing bytes short of a full sample are ignored.
func SamplesFromBytes(data []byte) []float32 {
	n := len(data) / 4
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(data[4*i:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}
