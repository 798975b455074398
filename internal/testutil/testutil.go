package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/live"
)

// CreateTempConfigFile creates a temporary config file for testing
func CreateTempConfigFile(t *testing.T, configContent string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// MockFrame creates a test audio frame
func MockFrame(samples []float32) audio.Frame {
	if samples == nil {
		samples = make([]float32, 1024)
		for i := range samples {
			samples[i] = float32(i%200-100) / 100
		}
	}

	return audio.Frame{
		Samples:   samples,
		Rate:      16000,
		Timestamp: time.Now(),
	}
}

// TestContext returns a context with timeout for testing
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// WaitForCondition waits for a condition to be true or times out
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("Condition not met within %v", timeout)
		default:
			if condition() {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// CaptureOutput captures stdout for testing
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	out, _ := io.ReadAll(r)
	return string(out)
}

// MockRecorder emits a fixed set of frames and then keeps the capture
// open until stopped, like the real pw-record recorder.
type MockRecorder struct {
	Frames     []audio.Frame
	StartError error
	StopError  error
	CaptureErr error // emitted on the error channel after the frames

	mu        sync.Mutex
	recording atomic.Bool
	stopCh    chan struct{}
	done      chan struct{}
	stopCalls int
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Frames: []audio.Frame{MockFrame(nil)},
	}
}

func (m *MockRecorder) Start(ctx context.Context) (<-chan audio.Frame, <-chan error, error) {
	if m.StartError != nil {
		return nil, nil, m.StartError
	}

	stopCh := make(chan struct{})
	done := make(chan struct{})
	m.mu.Lock()
	m.stopCh = stopCh
	m.done = done
	m.mu.Unlock()

	m.recording.Store(true)

	frameCh := make(chan audio.Frame, len(m.Frames)+1)
	errCh := make(chan error, 1)

	go func() {
		defer close(done)
		defer close(frameCh)
		defer close(errCh)
		defer m.recording.Store(false)

		for _, frame := range m.Frames {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case frameCh <- frame:
			}
		}

		if m.CaptureErr != nil {
			errCh <- m.CaptureErr
			return
		}

		// keep channel open until stopped
		select {
		case <-ctx.Done():
		case <-stopCh:
		}
	}()

	return frameCh, errCh, nil
}

func (m *MockRecorder) Stop() error {
	m.mu.Lock()
	m.stopCalls++
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
	err := m.StopError
	m.mu.Unlock()
	return err
}

func (m *MockRecorder) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (m *MockRecorder) IsRecording() bool {
	return m.recording.Load()
}

func (m *MockRecorder) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// MockSession implements live.Session for testing. Tests feed remote
// events through Emit.
type MockSession struct {
	OpenError error
	SendError error

	mu         sync.Mutex
	events     chan live.Event
	sent       []audio.Chunk
	closed     bool
	closeSends int
	closeCalls int
}

func NewMockSession() *MockSession {
	return &MockSession{events: make(chan live.Event, 32)}
}

func (m *MockSession) Open(ctx context.Context) error {
	if m.OpenError != nil {
		return m.OpenError
	}
	m.Emit(live.Event{Kind: live.EventOpen})
	return nil
}

func (m *MockSession) Send(chunk audio.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	if m.closed {
		return nil
	}
	m.sent = append(m.sent, chunk)
	return nil
}

func (m *MockSession) CloseSend() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeSends++
	return nil
}

func (m *MockSession) Events() <-chan live.Event {
	return m.events
}

func (m *MockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Emit queues an event as if it came from the remote service. Dropped
// once the session is closed.
func (m *MockSession) Emit(ev live.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.events <- ev
}

func (m *MockSession) SentChunks() []audio.Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]audio.Chunk, len(m.sent))
	copy(result, m.sent)
	return result
}

func (m *MockSession) CloseSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeSends
}

func (m *MockSession) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// MockNotifier records notifications instead of sending them.
type MockNotifier struct {
	mu         sync.Mutex
	recordings []bool
	prompts    []string
	errors     []string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) RecordingChanged(on bool) {
	m.mu.Lock()
	m.recordings = append(m.recordings, on)
	m.mu.Unlock()
}

func (m *MockNotifier) PromptReady(title, body string) {
	m.mu.Lock()
	m.prompts = append(m.prompts, title+": "+body)
	m.mu.Unlock()
}

func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	m.errors = append(m.errors, msg)
	m.mu.Unlock()
}

func (m *MockNotifier) Recordings() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]bool, len(m.recordings))
	copy(result, m.recordings)
	return result
}

func (m *MockNotifier) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.prompts))
	copy(result, m.prompts)
	return result
}

func (m *MockNotifier) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.errors))
	copy(result, m.errors)
	return result
}
