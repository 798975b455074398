package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func TestEncodePayloadSize(t *testing.T) {
	for _, n := range []int{0, 1, 3, 256, 4096} {
		f := Frame{Samples: make([]float32, n), Rate: 16000, Timestamp: time.Now()}
		chunk := Encode(f)

		raw, err := base64.StdEncoding.DecodeString(chunk.Data)
		if err != nil {
			t.Fatalf("n=%d: decode base64: %v", n, err)
		}
		if len(raw) != 2*n {
			t.Errorf("n=%d: payload = %d bytes, want %d", n, len(raw), 2*n)
		}
	}
}

func TestEncodeValues(t *testing.T) {
	tests := []struct {
		name   string
		sample float32
		want   int16
	}{
		{"zero", 0, 0},
		{"full positive", 1.0, 32767},
		{"full negative", -1.0, -32767},
		{"half", 0.5, 16383},
		{"clamped above", 2.5, 32767},
		{"clamped below", -3.0, -32767},
		{"clamped infinity", float32(math.Inf(1)), 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := Encode(Frame{Samples: []float32{tt.sample}, Rate: 16000})
			raw, err := base64.StdEncoding.DecodeString(chunk.Data)
			if err != nil {
				t.Fatalf("decode base64: %v", err)
			}
			got := int16(binary.LittleEndian.Uint16(raw))
			if got != tt.want {
				t.Errorf("Encode(%v) = %d, want %d", tt.sample, got, tt.want)
			}
		})
	}
}

func TestEncodeLittleEndianOrder(t *testing.T) {
	// 0.5 -> 16383 -> 0x3FFF -> bytes FF 3F on the wire.
	chunk := Encode(Frame{Samples: []float32{0.5}, Rate: 16000})
	raw, err := base64.StdEncoding.DecodeString(chunk.Data)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if raw[0] != 0xFF || raw[1] != 0x3F {
		t.Errorf("bytes = [%#x %#x], want [0xff 0x3f]", raw[0], raw[1])
	}
}

func TestEncodeMimeType(t *testing.T) {
	chunk := Encode(Frame{Samples: []float32{0}, Rate: 16000})
	if chunk.MimeType != "audio/pcm;rate=16000" {
		t.Errorf("MimeType = %q, want %q", chunk.MimeType, "audio/pcm;rate=16000")
	}

	chunk = Encode(Frame{Samples: []float32{0}, Rate: 24000})
	if chunk.MimeType != "audio/pcm;rate=24000" {
		t.Errorf("MimeType = %q, want %q", chunk.MimeType, "audio/pcm;rate=24000")
	}
}

func TestSamplesFromBytes(t *testing.T) {
	want := []float32{0, 0.25, -0.75, 1.0}
	data := make([]byte, 4*len(want))
	for i, s := range want {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(s))
	}

	got := SamplesFromBytes(data)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSamplesFromBytesIgnoresTrailing(t *testing.T) {
	data := make([]byte, 4*2+3) // two samples plus a ragged tail
	if got := SamplesFromBytes(data); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
