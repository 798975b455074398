// Package daemon is the long-running process behind the CLI: it owns the
// recording pipeline, the converter, the chat session, and the history
// store, and serves the control socket.
package daemon

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/bus"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/chat"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/convert"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/gemini"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/history"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/injection"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/live"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/notify"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/pipeline"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/recording"
)

type Daemon struct {
	manager  *config.Manager
	notifier notify.Notifier
	detector *language.Detector

	ctx    context.Context
	cancel context.CancelFunc

	pipeline *pipeline.Controller
	history  *history.Repository

	// mu guards the components swapped on config reloads and the
	// grounding flag.
	mu        sync.RWMutex
	converter *convert.Converter
	previewer *convert.Converter
	chat      *chat.Session
	injector  injection.Injector
	grounding bool
}

// New builds a daemon from the current configuration. The recorder and the
// live session are created per turn through factories that read the manager,
// so recording settings apply from the next turn without a restart.
func New(manager *config.Manager) (*Daemon, error) {
	cfg := manager.GetConfig()

	dir, err := cfg.HistoryDir()
	if err != nil {
		return nil, err
	}
	repo, err := history.Open(dir, cfg.History.Limit)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Daemon{
		manager:  manager,
		notifier: notifierFor(cfg),
		detector: language.NewDetector(),
		ctx:      ctx,
		cancel:   cancel,
		history:  repo,
	}

	d.pipeline = pipeline.New(
		func() pipeline.Recorder {
			return recording.NewRecorder(manager.GetConfig().ToRecordingConfig())
		},
		func() live.Session {
			return live.NewClient(manager.GetConfig().ToLiveConfig())
		},
		d.notifier,
		cfg.ToPipelineConfig(),
	)

	d.applyConfig(cfg)
	manager.OnChange(d.applyConfig)

	return d, nil
}

// applyConfig rebuilds the components that follow config reloads. The chat
// session survives swaps so the conversation log is kept; when no chat
// adapter can be built the session stays as it was, or nil at startup.
func (d *Daemon) applyConfig(cfg *config.Config) {
	key := cfg.ResolveAPIKey(provider.Gemini)

	converter := convert.New(gemini.New(key, cfg.Convert.Model), d.detector, cfg.ToConvertConfig())

	var previewer *convert.Converter
	if cfg.Preview.Enabled {
		previewer = convert.New(gemini.New(key, cfg.Preview.Model), d.detector, cfg.ToPreviewConfig())
	}

	adapter, err := chat.NewAdapter(cfg.ToChatConfig())
	if err != nil {
		log.Printf("daemon: chat unavailable: %v", err)
	}

	injector := injection.NewInjector(cfg.ToInjectionConfig())

	d.pipeline.SetConfig(cfg.ToPipelineConfig())

	d.mu.Lock()
	d.converter = converter
	d.previewer = previewer
	if adapter != nil {
		if d.chat == nil {
			d.chat = chat.NewSession(adapter)
		} else {
			d.chat.SetAdapter(adapter)
		}
	}
	d.injector = injector
	d.grounding = cfg.General.Grounding
	d.mu.Unlock()
}

// notifierFor picks the notifier the config asks for.
func notifierFor(cfg *config.Config) notify.Notifier {
	if !cfg.Notifications.Enabled {
		return notify.Nop{}
	}
	switch cfg.Notifications.Type {
	case "log":
		return notify.Log{}
	case "none":
		return notify.Nop{}
	default:
		return notify.Desktop{}
	}
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}

	if err := bus.CreatePidFile(); err != nil {
		ln.Close()
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Config watching unavailable: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal %v, shutting down gracefully", sig)
			d.cancel()
		case <-d.ctx.Done():
		}
	}()

	log.Printf("Daemon started, listening on socket")
	return d.serve(ln)
}

// serve accepts connections until the daemon context is cancelled, then
// releases everything the daemon holds.
func (d *Daemon) serve(ln net.Listener) error {
	defer d.shutdown()
	defer ln.Close()

	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) shutdown() {
	d.pipeline.Close()
	if err := d.history.Close(); err != nil {
		log.Printf("daemon: history close: %v", err)
	}
	d.manager.Stop()
}

func (d *Daemon) groundingOn() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.grounding
}
