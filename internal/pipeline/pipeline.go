package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/live"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/notify"
)

type Status string

const (
	Idle     Status = "idle"
	Starting Status = "starting"
	Active   Status = "active"
	Stopping Status = "stopping"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// Recorder captures microphone audio as fixed-size sample frames.
type Recorder interface {
	Start(ctx context.Context) (<-chan audio.Frame, <-chan error, error)
	Stop() error
	Wait()
}

// RecorderFactory builds the one recorder for a turn.
type RecorderFactory func() Recorder

// SessionFactory builds the one live transcription session for a turn.
// Session handles are never reused across turns.
type SessionFactory func() live.Session

type Config struct {
	// MaxDuration force-stops a turn that was never stopped explicitly.
	MaxDuration time.Duration
	// StopGrace bounds how long a graceful stop waits for trailing
	// transcript fragments after the end-of-audio signal.
	StopGrace time.Duration
	// ResetBufferOnStart clears the previous turn's transcript when a
	// new turn starts.
	ResetBufferOnStart bool
}

func DefaultConfig() Config {
	return Config{
		MaxDuration:        5 * time.Minute,
		StopGrace:          2 * time.Second,
		ResetBufferOnStart: true,
	}
}

// Controller owns the recording turn lifecycle: idle, starting, active,
// stopping, idle again. While a turn runs it holds exactly one recorder
// and at most one live session; in idle it holds neither.
type Controller struct {
	newRecorder RecorderFactory
	newSession  SessionFactory
	notifier    notify.Notifier

	buffer *TurnBuffer

	mu     sync.Mutex // guards status, turn, and cfg
	status Status
	turn   *turn
	cfg    Config
}

// turn is the state held for one recording. The config is snapshotted at
// start so a reload mid-turn cannot change its limits. result and err are
// written by the turn goroutine before done closes.
type turn struct {
	cfg       Config
	cancel    context.CancelFunc
	stopCh    chan struct{}
	done      chan struct{}
	startedAt time.Time
	discard   atomic.Bool

	result string
	err    error
}

func New(newRecorder RecorderFactory, newSession SessionFactory, notifier notify.Notifier, cfg Config) *Controller {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Controller{
		newRecorder: newRecorder,
		newSession:  newSession,
		notifier:    notifier,
		cfg:         sanitize(cfg),
		buffer:      NewTurnBuffer(),
		status:      Idle,
	}
}

func sanitize(cfg Config) Config {
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultConfig().MaxDuration
	}
	if cfg.StopGrace <= 0 {
		cfg.StopGrace = DefaultConfig().StopGrace
	}
	return cfg
}

// SetConfig replaces the turn limits. A running turn keeps the config it
// started with; the new values apply from the next turn.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	c.cfg = sanitize(cfg)
	c.mu.Unlock()
}

// Start begins a new recording turn. Exactly one turn runs at a time:
// while a turn is starting, active, or stopping, another start is
// rejected with ErrAlreadyRecording. Acquisition failures abort back to
// idle with nothing held.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.status != Idle {
		c.mu.Unlock()
		return ErrAlreadyRecording
	}
	c.status = Starting
	cfg := c.cfg
	c.mu.Unlock()

	if cfg.ResetBufferOnStart {
		c.buffer.Reset()
	}

	turnCtx, cancel := context.WithCancel(ctx)

	session := c.newSession()
	if err := session.Open(turnCtx); err != nil {
		cancel()
		c.setStatus(Idle)
		return fmt.Errorf("open transcription session: %w", err)
	}

	recorder := c.newRecorder()
	frames, errs, err := recorder.Start(turnCtx)
	if err != nil {
		_ = session.Close()
		cancel()
		c.setStatus(Idle)
		return fmt.Errorf("start capture: %w", err)
	}

	t := &turn{
		cfg:       cfg,
		cancel:    cancel,
		stopCh:    make(chan struct{}, 1),
		done:      make(chan struct{}),
		startedAt: time.Now(),
	}

	c.mu.Lock()
	c.turn = t
	c.mu.Unlock()

	// Notify before the turn goroutine runs so a turn that dies
	// immediately still reports started before stopped.
	c.notifier.RecordingChanged(true)

	go c.runTurn(turnCtx, t, recorder, session, frames, errs)
	return nil
}

// Stop ends the turn gracefully: capture halts, already-captured frames
// are flushed, the end-of-audio signal is sent, and trailing fragments
// are collected for a short grace period. Returns the accumulated
// transcript. The transcript survives even when the turn ended on an
// error; the error is returned alongside it.
func (c *Controller) Stop(ctx context.Context) (string, error) {
	t := c.currentTurn()
	if t == nil {
		return "", ErrNotRecording
	}

	select {
	case t.stopCh <- struct{}{}:
	case <-t.done:
		// Turn already ended on its own.
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case <-t.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return t.result, t.err
}

// Cancel aborts the turn and discards its transcript.
func (c *Controller) Cancel() error {
	t := c.currentTurn()
	if t == nil {
		return ErrNotRecording
	}
	t.discard.Store(true)
	t.cancel()
	<-t.done
	return nil
}

// Close aborts any in-flight turn. For daemon shutdown.
func (c *Controller) Close() {
	t := c.currentTurn()
	if t == nil {
		return
	}
	t.cancel()
	<-t.done
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Snapshot reports the controller state for status queries.
type Snapshot struct {
	Status    Status
	Fragments int
	Elapsed   time.Duration
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	status := c.status
	t := c.turn
	c.mu.Unlock()

	s := Snapshot{Status: status, Fragments: c.buffer.Len()}
	if t != nil {
		s.Elapsed = time.Since(t.startedAt)
	}
	return s
}

// Transcript returns the accumulated transcript. Readable at any time,
// including after the turn has ended.
func (c *Controller) Transcript() string {
	return c.buffer.Text()
}

// ResetBuffer clears the transcript buffer.
func (c *Controller) ResetBuffer() {
	c.buffer.Reset()
}

// runTurn is the single goroutine that owns the turn: it pumps captured
// frames into the session, folds transcript fragments into the buffer,
// and decides when the turn is over. Capture and session events reach it
// over channels only.
func (c *Controller) runTurn(ctx context.Context, t *turn, recorder Recorder, session live.Session, frames <-chan audio.Frame, errs <-chan error) {
	timeout := time.NewTimer(t.cfg.MaxDuration)
	defer timeout.Stop()

	events := session.Events()
	graceful := false

loop:
	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				// Capture ended on its own; its cause may still be
				// queued on the error channel.
				select {
				case err := <-errs:
					if err != nil {
						log.Printf("pipeline: capture error: %v", err)
						c.notifier.Error(fmt.Sprintf("Recording failed: %v", err))
						t.err = err
					}
				default:
				}
				break loop
			}
			c.activate()
			if err := session.Send(audio.Encode(frame)); err != nil {
				log.Printf("pipeline: send failed: %v", err)
				c.notifier.Error(fmt.Sprintf("Transcription send failed: %v", err))
				t.err = err
				break loop
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				log.Printf("pipeline: capture error: %v", err)
				c.notifier.Error(fmt.Sprintf("Recording failed: %v", err))
				t.err = err
				break loop
			}

		case ev, ok := <-events:
			if !ok {
				break loop
			}
			switch ev.Kind {
			case live.EventOpen:
				log.Printf("pipeline: transcription session open")
			case live.EventTranscript:
				c.buffer.Append(ev.Text)
			case live.EventError:
				// Whatever was transcribed so far is kept.
				log.Printf("pipeline: session error: %v", ev.Err)
				c.notifier.Error(fmt.Sprintf("Transcription failed: %v", ev.Err))
				t.err = ev.Err
				break loop
			case live.EventClosed:
				log.Printf("pipeline: session closed by remote")
				break loop
			}

		case <-t.stopCh:
			graceful = true
			break loop

		case <-timeout.C:
			log.Printf("pipeline: recording timeout after %s", t.cfg.MaxDuration)
			graceful = true
			break loop

		case <-ctx.Done():
			break loop
		}
	}

	c.finishTurn(t, recorder, session, frames, events, graceful)
}

// finishTurn releases everything the turn holds. Every release step runs
// even when an earlier one fails; a partial teardown is a resource leak.
func (c *Controller) finishTurn(t *turn, recorder Recorder, session live.Session, frames <-chan audio.Frame, events <-chan live.Event, graceful bool) {
	c.setStatus(Stopping)

	if err := recorder.Stop(); err != nil {
		log.Printf("pipeline: recorder stop failed: %v", err)
	}
	recorder.Wait()

	if graceful {
		// Capture has exited, so the frame channel is closed; flush
		// what it produced before signaling end of audio.
		for frame := range frames {
			if err := session.Send(audio.Encode(frame)); err != nil {
				log.Printf("pipeline: flush send failed: %v", err)
				break
			}
		}
		if err := session.CloseSend(); err != nil {
			log.Printf("pipeline: stream end failed: %v", err)
		}
		c.drainFragments(events, t.cfg.StopGrace)
	}

	if err := session.Close(); err != nil {
		log.Printf("pipeline: session close failed: %v", err)
	}

	t.cancel()

	if t.discard.Load() {
		c.buffer.Reset()
	}
	t.result = c.buffer.Text()

	c.mu.Lock()
	c.status = Idle
	if c.turn == t {
		c.turn = nil
	}
	c.mu.Unlock()

	c.notifier.RecordingChanged(false)
	close(t.done)
}

// drainFragments collects fragments that arrive between the end-of-audio
// signal and teardown, bounded by the grace period.
func (c *Controller) drainFragments(events <-chan live.Event, grace time.Duration) {
	timer := time.NewTimer(grace)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case live.EventTranscript:
				c.buffer.Append(ev.Text)
			case live.EventError:
				log.Printf("pipeline: session error during stop: %v", ev.Err)
				return
			case live.EventClosed:
				return
			}
		case <-timer.C:
			return
		}
	}
}

func (c *Controller) currentTurn() *turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turn
}

func (c *Controller) activate() {
	c.mu.Lock()
	if c.status == Starting {
		c.status = Active
	}
	c.mu.Unlock()
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}
