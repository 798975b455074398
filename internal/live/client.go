package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/audio"
)

// systemPersona keeps the remote model from answering: the session exists
// only to transcribe what it hears.
const systemPersona = "You are a silent transcription session. " +
	"Never reply, never comment, never generate speech. Only listen."

// Client is the Gemini Live implementation of Session.
type Client struct {
	config Config

	mu      sync.Mutex // guards conn, pending, started, ready, closed
	conn    *websocket.Conn
	pending []audio.Chunk
	started bool
	ready   bool
	closed  bool

	events    chan Event
	discarded atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Session = (*Client)(nil)

func NewClient(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &Client{
		config: config,
		events: make(chan Event, 100),
	}
}

// Open starts resolving the session in the background and returns
// immediately. Progress arrives on Events: an open event once the setup
// handshake completes, then transcript fragments, then a closed event.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("session already opened")
	}
	if c.config.APIKey == "" {
		return fmt.Errorf("missing API key")
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.run()

	return nil
}

func (c *Client) run() {
	defer c.wg.Done()
	defer close(c.events)

	wsURL := c.buildURL()
	conn, _, err := websocket.DefaultDialer.DialContext(c.ctx, wsURL, nil)
	if err != nil {
		log.Printf("live: dial failed: %v", err)
		c.markClosed()
		c.emit(Event{Kind: EventError, Err: fmt.Errorf("connect transcription session: %w", err)})
		c.emit(Event{Kind: EventClosed})
		return
	}

	c.mu.Lock()
	if c.closed {
		// Close raced the dial; drop the connection we no longer want.
		c.mu.Unlock()
		conn.Close()
		c.emit(Event{Kind: EventClosed})
		return
	}
	c.conn = conn
	err = conn.WriteJSON(c.setupMessage())
	c.mu.Unlock()

	if err != nil {
		log.Printf("live: setup write failed: %v", err)
		c.markClosed()
		conn.Close()
		c.emit(Event{Kind: EventError, Err: fmt.Errorf("configure transcription session: %w", err)})
		c.emit(Event{Kind: EventClosed})
		return
	}

	c.readLoop(conn)
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil || c.isClosed() {
				// Local teardown; not an error.
				c.emit(Event{Kind: EventClosed})
				return
			}
			c.markClosed()
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("live: remote closed the session")
			} else {
				log.Printf("live: read error: %v", err)
				c.emit(Event{Kind: EventError, Err: fmt.Errorf("transcription stream: %w", err)})
			}
			c.emit(Event{Kind: EventClosed})
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("live: parse error: %v", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg serverMessage) {
	switch {
	case msg.SetupComplete != nil:
		c.flushPending()
		c.emit(Event{Kind: EventOpen})

	case msg.Error != nil:
		errMsg := msg.Error.Message
		if msg.Error.Status != "" {
			errMsg = fmt.Sprintf("%s: %s", msg.Error.Status, errMsg)
		}
		log.Printf("live: remote error: %s", errMsg)
		c.emit(Event{Kind: EventError, Err: fmt.Errorf("transcription service: %s", errMsg)})

	case msg.ServerContent != nil:
		sc := msg.ServerContent
		if sc.InputTranscription != nil && sc.InputTranscription.Text != "" {
			c.emit(Event{Kind: EventTranscript, Text: sc.InputTranscription.Text})
		}
		// Model turns and turn-complete markers are not consumed; the
		// session is transcription-only.

	case msg.GoAway != nil:
		log.Printf("live: remote going away (time left %s)", msg.GoAway.TimeLeft)
	}
}

// Send forwards one encoded chunk. Never blocks on session readiness:
// before the open event chunks queue in arrival order; after close they
// are logged and discarded. A write failure on a live connection is
// returned to the caller.
func (c *Client) Send(chunk audio.Chunk) error {
	c.mu.Lock()

	if !c.started {
		c.mu.Unlock()
		return fmt.Errorf("session not opened")
	}
	if c.closed {
		c.mu.Unlock()
		c.discarded.Add(1)
		log.Printf("live: session closed, discarding chunk")
		return nil
	}
	if !c.ready {
		c.pending = append(c.pending, chunk)
		c.mu.Unlock()
		return nil
	}

	err := c.conn.WriteJSON(chunkMessage(chunk))
	c.mu.Unlock()

	if err != nil {
		log.Printf("live: write error: %v", err)
		return fmt.Errorf("send audio chunk: %w", err)
	}
	return nil
}

// CloseSend signals end of audio for the turn without tearing the
// connection down, so the remote can flush trailing fragments.
func (c *Client) CloseSend() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.closed || !c.ready {
		return nil
	}
	msg := realtimeInputMessage{RealtimeInput: realtimeInput{AudioStreamEnd: true}}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send audio stream end: %w", err)
	}
	return nil
}

// Events returns the inbound event stream. The channel closes after the
// closed event once the session is fully torn down.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Close tears the session down and waits for the reader to exit.
// Idempotent; safe to call during a still-resolving open.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	c.dropPendingLocked()
	c.closed = true
	conn := c.conn
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		// Best effort; the remote notices the disconnect either way.
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}

	c.wg.Wait()
	return nil
}

// Discarded reports how many chunks were dropped after close.
func (c *Client) Discarded() int64 {
	return c.discarded.Load()
}

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) markClosed() {
	c.mu.Lock()
	c.dropPendingLocked()
	c.closed = true
	c.mu.Unlock()
}

func (c *Client) dropPendingLocked() {
	if n := len(c.pending); n > 0 {
		c.discarded.Add(int64(n))
		log.Printf("live: session closed with %d queued chunks, discarding", n)
		c.pending = nil
	}
}

// flushPending marks the session ready and writes every queued chunk, in
// order, before any chunk submitted after this point.
func (c *Client) flushPending() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ready = true
	for _, chunk := range c.pending {
		if err := c.conn.WriteJSON(chunkMessage(chunk)); err != nil {
			log.Printf("live: flush write error: %v", err)
			break
		}
	}
	c.pending = nil
}

func (c *Client) buildURL() string {
	return c.config.Endpoint + bidiPath + "?key=" + url.QueryEscape(c.config.APIKey)
}

func (c *Client) setupMessage() setupMessage {
	model := c.config.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return setupMessage{
		Setup: setupPayload{
			Model: model,
			GenerationConfig: &generationConfig{
				ResponseModalities: []string{"TEXT"},
			},
			SystemInstruction: &wireContent{
				Parts: []wirePart{{Text: systemPersona}},
			},
			InputAudioTranscription: &struct{}{},
		},
	}
}

func chunkMessage(chunk audio.Chunk) realtimeInputMessage {
	return realtimeInputMessage{
		RealtimeInput: realtimeInput{
			MediaChunks: []mediaChunk{{MimeType: chunk.MimeType, Data: chunk.Data}},
		},
	}
}
