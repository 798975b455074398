package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/live"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/testutil"
)

func testConfig() Config {
	return Config{
		MaxDuration:        time.Minute,
		StopGrace:          50 * time.Millisecond,
		ResetBufferOnStart: true,
	}
}

func newTestController(cfg Config) (*Controller, *testutil.MockRecorder, *testutil.MockSession, *testutil.MockNotifier) {
	recorder := testutil.NewMockRecorder()
	session := testutil.NewMockSession()
	notifier := testutil.NewMockNotifier()
	c := New(
		func() Recorder { return recorder },
		func() live.Session { return session },
		notifier,
		cfg,
	)
	return c, recorder, session, notifier
}

func TestControllerInitialState(t *testing.T) {
	c, _, _, _ := newTestController(testConfig())

	if c.Status() != Idle {
		t.Errorf("Status() = %v, want idle", c.Status())
	}
	if c.Transcript() != "" {
		t.Errorf("Transcript() = %q, want empty", c.Transcript())
	}
}

func TestControllerStartStop(t *testing.T) {
	c, recorder, session, notifier := newTestController(testConfig())
	ctx := context.Background()

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	testutil.WaitForCondition(t, func() bool {
		return len(session.SentChunks()) >= 1
	}, 2*time.Second)

	session.Emit(live.Event{Kind: live.EventTranscript, Text: "Oka pilla "})
	session.Emit(live.Event{Kind: live.EventTranscript, Text: "akasamlo egurutundi"})
	testutil.WaitForCondition(t, func() bool {
		return c.Transcript() == "Oka pilla akasamlo egurutundi"
	}, 2*time.Second)

	text, err := c.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if text != "Oka pilla akasamlo egurutundi" {
		t.Errorf("Stop() = %q, want the accumulated transcript", text)
	}

	if c.Status() != Idle {
		t.Errorf("Status() after stop = %v, want idle", c.Status())
	}
	if recorder.StopCalls() == 0 {
		t.Error("recorder was not stopped")
	}
	if session.CloseSends() != 1 {
		t.Errorf("CloseSends() = %d, want 1 (graceful end-of-audio)", session.CloseSends())
	}
	if session.CloseCalls() == 0 {
		t.Error("session was not closed")
	}

	recs := notifier.Recordings()
	if len(recs) != 2 || !recs[0] || recs[1] {
		t.Errorf("recording notifications = %v, want [true false]", recs)
	}
}

func TestControllerSendsFramesInOrder(t *testing.T) {
	c, recorder, session, _ := newTestController(testConfig())
	recorder.Frames = []audio.Frame{
		testutil.MockFrame([]float32{0.1, 0.2}),
		testutil.MockFrame([]float32{0.3, 0.4}),
		testutil.MockFrame([]float32{0.5, 0.6}),
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Close()

	testutil.WaitForCondition(t, func() bool {
		return len(session.SentChunks()) == 3
	}, 2*time.Second)

	sent := session.SentChunks()
	for i, frame := range recorder.Frames {
		want := audio.Encode(frame)
		if sent[i].Data != want.Data {
			t.Errorf("chunk %d does not match frame %d", i, i)
		}
	}
	if sent[0].MimeType != "audio/pcm;rate=16000" {
		t.Errorf("MimeType = %q, want audio/pcm;rate=16000", sent[0].MimeType)
	}
}

func TestControllerRejectsConcurrentStart(t *testing.T) {
	c, _, _, _ := newTestController(testConfig())
	ctx := context.Background()

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Close()

	if err := c.Start(ctx); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("second Start() = %v, want ErrAlreadyRecording", err)
	}
}

func TestControllerStopWithoutTurn(t *testing.T) {
	c, _, _, _ := newTestController(testConfig())

	if _, err := c.Stop(context.Background()); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop() = %v, want ErrNotRecording", err)
	}
	if err := c.Cancel(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Cancel() = %v, want ErrNotRecording", err)
	}
}

func TestControllerCancelDiscardsTranscript(t *testing.T) {
	c, _, session, _ := newTestController(testConfig())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	session.Emit(live.Event{Kind: live.EventTranscript, Text: "do not keep"})
	testutil.WaitForCondition(t, func() bool {
		return c.Transcript() != ""
	}, 2*time.Second)

	if err := c.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if c.Transcript() != "" {
		t.Errorf("Transcript() after cancel = %q, want empty", c.Transcript())
	}
	if c.Status() != Idle {
		t.Errorf("Status() after cancel = %v, want idle", c.Status())
	}
	if session.CloseCalls() == 0 {
		t.Error("session was not closed on cancel")
	}
}

func TestControllerCaptureErrorEndsTurn(t *testing.T) {
	c, recorder, session, notifier := newTestController(testConfig())
	recorder.CaptureErr = errors.New("device vanished")

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	testutil.WaitForCondition(t, func() bool {
		return c.Status() == Idle
	}, 2*time.Second)

	if len(notifier.Errors()) == 0 {
		t.Error("capture error was not surfaced")
	}
	if session.CloseCalls() == 0 {
		t.Error("session must be released on capture error")
	}
	if _, err := c.Stop(context.Background()); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop() after failed turn = %v, want ErrNotRecording", err)
	}
}

func TestControllerSessionErrorKeepsTranscript(t *testing.T) {
	c, _, session, notifier := newTestController(testConfig())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	session.Emit(live.Event{Kind: live.EventTranscript, Text: "kept"})
	testutil.WaitForCondition(t, func() bool {
		return c.Transcript() == "kept"
	}, 2*time.Second)

	session.Emit(live.Event{Kind: live.EventError, Err: errors.New("quota exceeded")})
	testutil.WaitForCondition(t, func() bool {
		return c.Status() == Idle
	}, 2*time.Second)

	// What was already transcribed survives the failure.
	if c.Transcript() != "kept" {
		t.Errorf("Transcript() = %q, want %q", c.Transcript(), "kept")
	}
	if len(notifier.Errors()) == 0 {
		t.Error("session error was not surfaced")
	}
}

func TestControllerRecorderStartFailure(t *testing.T) {
	c, recorder, session, notifier := newTestController(testConfig())
	recorder.StartError = errors.New("no capture device")

	err := c.Start(context.Background())
	if err == nil {
		t.Fatal("Start() should fail when the recorder cannot start")
	}
	if c.Status() != Idle {
		t.Errorf("Status() = %v, want idle after failed start", c.Status())
	}
	if session.CloseCalls() != 1 {
		t.Errorf("CloseCalls() = %d, want 1 (session released)", session.CloseCalls())
	}
	if len(notifier.Recordings()) != 0 {
		t.Errorf("no recording notification expected, got %v", notifier.Recordings())
	}
}

func TestControllerSessionOpenFailure(t *testing.T) {
	c, recorder, session, _ := newTestController(testConfig())
	session.OpenError = errors.New("missing API key")

	if err := c.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail when the session cannot open")
	}
	if c.Status() != Idle {
		t.Errorf("Status() = %v, want idle", c.Status())
	}
	if recorder.StopCalls() != 0 {
		t.Errorf("recorder should never have started, got %d stop calls", recorder.StopCalls())
	}
}

func TestControllerTimeoutEndsTurnGracefully(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 50 * time.Millisecond
	c, _, session, _ := newTestController(cfg)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	testutil.WaitForCondition(t, func() bool {
		return c.Status() == Idle
	}, 2*time.Second)

	if session.CloseSends() != 1 {
		t.Errorf("CloseSends() = %d, want 1 (timeout ends the turn gracefully)", session.CloseSends())
	}
}

func TestControllerBufferResetAcrossTurns(t *testing.T) {
	var mu sync.Mutex
	var sessions []*testutil.MockSession

	newRecorder := func() Recorder { return testutil.NewMockRecorder() }
	newSession := func() live.Session {
		s := testutil.NewMockSession()
		mu.Lock()
		sessions = append(sessions, s)
		mu.Unlock()
		return s
	}

	runTurn := func(t *testing.T, c *Controller, text string) string {
		t.Helper()
		if err := c.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		mu.Lock()
		s := sessions[len(sessions)-1]
		mu.Unlock()
		s.Emit(live.Event{Kind: live.EventTranscript, Text: text})
		testutil.WaitForCondition(t, func() bool {
			return strings.Contains(c.Transcript(), text)
		}, 2*time.Second)
		got, err := c.Stop(context.Background())
		if err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
		return got
	}

	t.Run("reset on start", func(t *testing.T) {
		c := New(newRecorder, newSession, nil, testConfig())
		runTurn(t, c, "first")
		if got := runTurn(t, c, "second"); got != "second" {
			t.Errorf("transcript = %q, want %q", got, "second")
		}
	})

	t.Run("accumulate when disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.ResetBufferOnStart = false
		c := New(newRecorder, newSession, nil, cfg)
		runTurn(t, c, "first")
		if got := runTurn(t, c, "second"); got != "firstsecond" {
			t.Errorf("transcript = %q, want %q", got, "firstsecond")
		}
	})
}

func TestControllerSetConfigAppliesNextTurn(t *testing.T) {
	var mu sync.Mutex
	var sessions []*testutil.MockSession

	c := New(
		func() Recorder { return testutil.NewMockRecorder() },
		func() live.Session {
			s := testutil.NewMockSession()
			mu.Lock()
			sessions = append(sessions, s)
			mu.Unlock()
			return s
		},
		nil,
		testConfig(),
	)

	runTurn := func(text string) string {
		t.Helper()
		if err := c.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		mu.Lock()
		s := sessions[len(sessions)-1]
		mu.Unlock()
		s.Emit(live.Event{Kind: live.EventTranscript, Text: text})
		testutil.WaitForCondition(t, func() bool {
			return strings.Contains(c.Transcript(), text)
		}, 2*time.Second)
		got, err := c.Stop(context.Background())
		if err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
		return got
	}

	runTurn("first")

	cfg := testConfig()
	cfg.ResetBufferOnStart = false
	c.SetConfig(cfg)

	if got := runTurn("second"); got != "firstsecond" {
		t.Errorf("transcript = %q, want the buffer kept after SetConfig", got)
	}
}

func TestControllerSnapshot(t *testing.T) {
	c, _, session, _ := newTestController(testConfig())

	snap := c.Snapshot()
	if snap.Status != Idle || snap.Fragments != 0 {
		t.Errorf("idle snapshot = %+v", snap)
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Close()

	testutil.WaitForCondition(t, func() bool {
		return c.Status() == Active
	}, 2*time.Second)

	session.Emit(live.Event{Kind: live.EventTranscript, Text: "x"})
	testutil.WaitForCondition(t, func() bool {
		return c.Snapshot().Fragments == 1
	}, 2*time.Second)

	if snap := c.Snapshot(); snap.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0 during a turn", snap.Elapsed)
	}
}

func TestControllerCloseAbortsTurn(t *testing.T) {
	c, _, _, _ := newTestController(testConfig())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	c.Close()

	if c.Status() != Idle {
		t.Errorf("Status() after close = %v, want idle", c.Status())
	}

	// Close with no turn is a no-op.
	c.Close()
}
