package recording

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
)

// Acquisition failures. PermissionDenied means the microphone exists but
// access was refused; DeviceUnavailable covers everything else (no
// pw-record, no PipeWire daemon, no capture device).
var (
	ErrPermissionDenied  = errors.New("microphone permission denied")
	ErrDeviceUnavailable = errors.New("audio device unavailable")
)

type Config struct {
	SampleRate        int
	Channels          int
	FrameSamples      int
	Device            string
	ChannelBufferSize int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:        16000,
		Channels:          1,
		FrameSamples:      4096,
		Device:            "",
		ChannelBufferSize: 30,
	}
}

// Recorder captures mono float samples from the microphone through a
// pw-record subprocess and emits fixed-size frames.
type Recorder struct {
	config    Config
	recording atomic.Bool

	mu     sync.Mutex // guards cmd and cancel
	cmd    *exec.Cmd
	cancel context.CancelFunc

	wg sync.WaitGroup
}

func NewRecorder(config Config) *Recorder {
	return &Recorder{config: config}
}

func (r *Recorder) IsRecording() bool {
	return r.recording.Load()
}

// Start acquires the microphone and begins emitting frames. The frame
// channel yields one audio.Frame per FrameSamples block in capture order
// and closes when the capture loop exits.
func (r *Recorder) Start(ctx context.Context) (<-chan audio.Frame, <-chan error, error) {
	if r.recording.Load() {
		return nil, nil, fmt.Errorf("already recording")
	}

	if err := r.validateConfig(); err != nil {
		return nil, nil, err
	}

	if err := CheckPipeWireAvailable(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	recordingCtx, cancel := context.WithCancel(ctx)

	frameCh := make(chan audio.Frame, r.config.ChannelBufferSize)
	errCh := make(chan error, 1)

	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	r.recording.Store(true)
	r.wg.Add(1)
	go r.captureLoop(recordingCtx, frameCh, errCh)

	return frameCh, errCh, nil
}

// Stop tears the capture down. Safe to call at any point, including after
// a failed or partial start, and safe to call more than once.
func (r *Recorder) Stop() error {
	if !r.recording.Load() {
		return nil
	}

	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	return nil
}

// Wait blocks until the capture loop has fully exited.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

func (r *Recorder) captureLoop(ctx context.Context, frameCh chan<- audio.Frame, errCh chan<- error) {
	var stderrWg sync.WaitGroup

	defer func() {
		close(frameCh)

		// Reap the child and let the stderr scanner drain before the
		// error channel closes; the scanner writes to it.
		r.mu.Lock()
		cmd := r.cmd
		r.mu.Unlock()
		if cmd != nil {
			_ = cmd.Wait()
		}
		stderrWg.Wait()
		close(errCh)

		r.mu.Lock()
		r.cmd = nil
		r.cancel = nil
		r.mu.Unlock()

		r.recording.Store(false)
		r.wg.Done()
	}()

	args := r.buildPwRecordArgs()
	cmd := exec.CommandContext(ctx, "pw-record", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.emitErr(errCh, fmt.Errorf("create stdout pipe: %w", err))
		r.requestCancel()
		return
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		r.emitErr(errCh, fmt.Errorf("create stderr pipe: %w", err))
		r.requestCancel()
		return
	}

	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()

	if err := cmd.Start(); err != nil {
		r.emitErr(errCh, fmt.Errorf("%w: start pw-record: %v", ErrDeviceUnavailable, err))
		r.requestCancel()
		return
	}

	// pw-record reports refusals on stderr; classify them so the
	// controller can surface the right alert.
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			log.Printf("recording: pw-record: %s", line)
			if isPermissionLine(line) {
				r.emitErr(errCh, fmt.Errorf("%w: %s", ErrPermissionDenied, line))
				r.requestCancel()
			}
		}
	}()

	frameBytes := 4 * r.config.FrameSamples * r.config.Channels
	buffer := make([]byte, frameBytes)
	var droppedCount int
	lastDropLog := time.Now()

	for {
		_, readErr := io.ReadFull(stdout, buffer)
		if readErr != nil {
			// EOF means the process ended (teardown or device gone);
			// a ragged tail short of one frame is dropped.
			if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
				return
			}
			r.emitErr(errCh, fmt.Errorf("read audio: %w", readErr))
			r.requestCancel()
			return
		}

		frame := audio.Frame{
			Samples:   audio.SamplesFromBytes(buffer),
			Rate:      r.config.SampleRate,
			Timestamp: time.Now(),
		}

		select {
		case frameCh <- frame:
		case <-ctx.Done():
			return
		default:
			// Capture must never block; drop and account.
			droppedCount++
			if time.Since(lastDropLog) > time.Second {
				log.Printf("recording: dropped %d frames due to backpressure", droppedCount)
				lastDropLog = time.Now()
				droppedCount = 0
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (r *Recorder) requestCancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Recorder) emitErr(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
		// Best-effort; avoid blocking
	}
	log.Printf("recording: %v", err)
}

func (r *Recorder) buildPwRecordArgs() []string {
	args := []string{
		"--format", "f32",
		"--rate", strconv.Itoa(r.config.SampleRate),
		"--channels", strconv.Itoa(r.config.Channels),
		"-", // stdout
	}
	if r.config.Device != "" {
		args = append(args, "--target", r.config.Device)
	}
	return args
}

func NewDefaultRecorder() *Recorder { return NewRecorder(DefaultConfig()) }

func CheckPipeWireAvailable(ctx context.Context) error {
	if _, err := exec.LookPath("pw-record"); err != nil {
		return fmt.Errorf("pw-record not found: %w (install pipewire-tools)", err)
	}
	// Use a short timeout to avoid hangs on misconfigured systems.
	if ctx == nil {
		ctx = context.Background()
	}
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	cmd := exec.CommandContext(checkCtx, "pw-cli", "info")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("PipeWire not running or accessible: %w", err)
	}
	return nil
}

func isPermissionLine(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "permission denied") ||
		strings.Contains(l, "access denied") ||
		strings.Contains(l, "not authorized")
}

func (r *Recorder) validateConfig() error {
	if r.config.SampleRate <= 0 {
		return fmt.Errorf("invalid SampleRate: %d", r.config.SampleRate)
	}
	if r.config.Channels <= 0 {
		return fmt.Errorf("invalid Channels: %d", r.config.Channels)
	}
	if r.config.FrameSamples <= 0 {
		return fmt.Errorf("invalid FrameSamples: %d", r.config.FrameSamples)
	}
	if r.config.ChannelBufferSize <= 0 {
		return fmt.Errorf("invalid ChannelBufferSize: %d", r.config.ChannelBufferSize)
	}
	return nil
}
