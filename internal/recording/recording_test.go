package recording

import (
	"context"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	t.Run("default values", func(t *testing.T) {
		if config.SampleRate != 16000 {
			t.Errorf("default sample rate should be 16000, got %d", config.SampleRate)
		}
		if config.Channels != 1 {
			t.Errorf("default channels should be 1, got %d", config.Channels)
		}
		if config.FrameSamples != 4096 {
			t.Errorf("default frame samples should be 4096, got %d", config.FrameSamples)
		}
		if config.Device != "" {
			t.Errorf("default device should be empty, got %s", config.Device)
		}
		if config.ChannelBufferSize != 30 {
			t.Errorf("default channel buffer size should be 30, got %d", config.ChannelBufferSize)
		}
	})
}

func TestNewRecorder(t *testing.T) {
	config := DefaultConfig()
	recorder := NewRecorder(config)

	t.Run("initial state", func(t *testing.T) {
		if recorder == nil {
			t.Fatal("recorder should not be nil")
		}
		if recorder.IsRecording() {
			t.Error("recorder should not be recording initially")
		}
		if recorder.config.SampleRate != config.SampleRate {
			t.Error("recorder should store the provided config")
		}
	})
}

func TestRecorderValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid default config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "invalid sample rate",
			config: Config{
				SampleRate:        0,
				Channels:          1,
				FrameSamples:      4096,
				ChannelBufferSize: 30,
			},
			expectError: true,
		},
		{
			name: "negative sample rate",
			config: Config{
				SampleRate:        -1,
				Channels:          1,
				FrameSamples:      4096,
				ChannelBufferSize: 30,
			},
			expectError: true,
		},
		{
			name: "invalid channels",
			config: Config{
				SampleRate:        16000,
				Channels:          0,
				FrameSamples:      4096,
				ChannelBufferSize: 30,
			},
			expectError: true,
		},
		{
			name: "invalid frame samples",
			config: Config{
				SampleRate:        16000,
				Channels:          1,
				FrameSamples:      0,
				ChannelBufferSize: 30,
			},
			expectError: true,
		},
		{
			name: "invalid channel buffer size",
			config: Config{
				SampleRate:        16000,
				Channels:          1,
				FrameSamples:      4096,
				ChannelBufferSize: 0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := NewRecorder(tt.config)
			err := recorder.validateConfig()

			if tt.expectError && err == nil {
				t.Errorf("expected error for config %+v", tt.config)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for config %+v: %v", tt.config, err)
			}
		})
	}
}

func TestRecorderBuildPwRecordArgs(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected []string
	}{
		{
			name:   "default config",
			config: DefaultConfig(),
			expected: []string{
				"--format", "f32",
				"--rate", "16000",
				"--channels", "1",
				"-",
			},
		},
		{
			name: "with device",
			config: Config{
				SampleRate:        48000,
				Channels:          2,
				Device:            "alsa_input.pci-0000_00_1f.3.analog-stereo",
				FrameSamples:      4096,
				ChannelBufferSize: 30,
			},
			expected: []string{
				"--format", "f32",
				"--rate", "48000",
				"--channels", "2",
				"-",
				"--target", "alsa_input.pci-0000_00_1f.3.analog-stereo",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := NewRecorder(tt.config)
			args := recorder.buildPwRecordArgs()

			if len(args) != len(tt.expected) {
				t.Fatalf("args length mismatch: got %v, expected %v", args, tt.expected)
			}

			for i, arg := range args {
				if arg != tt.expected[i] {
					t.Errorf("arg[%d] mismatch: got %q, expected %q", i, arg, tt.expected[i])
				}
			}
		})
	}
}

func TestRecorderLifecycle(t *testing.T) {
	recorder := NewDefaultRecorder()

	t.Run("initial state", func(t *testing.T) {
		if recorder.IsRecording() {
			t.Error("recorder should not be recording initially")
		}
	})

	t.Run("stop before start", func(t *testing.T) {
		if err := recorder.Stop(); err != nil {
			t.Errorf("stop should not error when not recording: %v", err)
		}
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := recorder.Stop(); err != nil {
				t.Errorf("repeated stop %d errored: %v", i, err)
			}
		}
	})
}

func TestIsPermissionLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"error: Permission denied", true},
		{"Access denied by policy", true},
		{"client not authorized to capture", true},
		{"connected to pipewire", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isPermissionLine(tt.line); got != tt.want {
			t.Errorf("isPermissionLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestRecorderConcurrency(t *testing.T) {
	recorder := NewDefaultRecorder()

	t.Run("concurrent IsRecording calls", func(t *testing.T) {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					recorder.IsRecording()
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			select {
			case <-done:
			case <-time.After(1 * time.Second):
				t.Fatal("timeout waiting for concurrent IsRecording calls")
			}
		}
	})

	t.Run("concurrent Stop calls", func(t *testing.T) {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				recorder.Stop()
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			select {
			case <-done:
			case <-time.After(1 * time.Second):
				t.Fatal("timeout waiting for concurrent Stop calls")
			}
		}
	})
}

func TestRecorderErrorConditions(t *testing.T) {
	t.Run("double start without stop", func(t *testing.T) {
		recorder := NewDefaultRecorder()

		recorder.recording.Store(true)
		defer recorder.recording.Store(false)

		ctx := context.Background()
		_, _, err := recorder.Start(ctx)
		if err == nil {
			t.Error("Start should return error when already recording")
		}
	})

	t.Run("invalid config start", func(t *testing.T) {
		recorder := NewRecorder(Config{SampleRate: -1})

		ctx := context.Background()
		_, _, err := recorder.Start(ctx)
		if err == nil {
			t.Error("Start should return error with invalid config")
		}
	})
}
