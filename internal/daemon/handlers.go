package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/bus"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/convert"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/enhance"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/gemini"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/history"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/pipeline"
)

const (
	stopTimeout    = 15 * time.Second
	convertTimeout = 60 * time.Second
	previewTimeout = 15 * time.Second
	chatTimeout    = 60 * time.Second
	copyTimeout    = 10 * time.Second
)

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}

	cmd, payload, err := bus.ParseRequest(line)
	if err != nil {
		respondErr(c, err)
		return
	}

	d.dispatch(c, cmd, payload)
}

func (d *Daemon) dispatch(c net.Conn, cmd byte, payload string) {
	switch cmd {
	case bus.CmdRecord:
		if err := d.pipeline.Start(d.ctx); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK recording\n")

	case bus.CmdStop:
		if err := d.stopRecording(); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK stopped\n")

	case bus.CmdToggle:
		if d.pipeline.Status() == pipeline.Idle {
			if err := d.pipeline.Start(d.ctx); err != nil {
				respondErr(c, err)
				return
			}
			fmt.Fprint(c, "OK recording\n")
			return
		}
		if err := d.stopRecording(); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK stopped\n")

	case bus.CmdCancel:
		if err := d.pipeline.Cancel(); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK cancelled\n")

	case bus.CmdStatus:
		fmt.Fprintf(c, "STATUS %s\n", d.statusLine())

	case bus.CmdBufferGet:
		respondJSON(c, bus.BufferResponse{Text: d.pipeline.Transcript()})

	case bus.CmdBufferClear:
		d.pipeline.ResetBuffer()
		fmt.Fprint(c, "OK cleared\n")

	case bus.CmdGrounding:
		d.mu.Lock()
		d.grounding = !d.grounding
		on := d.grounding
		d.mu.Unlock()
		fmt.Fprintf(c, "STATUS grounding=%t\n", on)

	case bus.CmdConvert:
		var req bus.ConvertRequest
		if !decode(c, payload, &req) {
			return
		}
		entry, err := d.convert(req)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, entry)

	case bus.CmdPreview:
		var req bus.PreviewRequest
		if !decode(c, payload, &req) {
			return
		}
		d.mu.RLock()
		previewer := d.previewer
		d.mu.RUnlock()
		if previewer == nil {
			respondErr(c, fmt.Errorf("preview disabled"))
			return
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			text = d.pipeline.Transcript()
		}
		ctx, cancel := context.WithTimeout(d.ctx, previewTimeout)
		defer cancel()
		respondJSON(c, bus.PreviewResponse{Translation: previewer.Preview(ctx, text)})

	case bus.CmdChatSend:
		var req bus.ChatRequest
		if !decode(c, payload, &req) {
			return
		}
		d.mu.RLock()
		session := d.chat
		d.mu.RUnlock()
		if session == nil {
			respondErr(c, fmt.Errorf("chat unavailable: no usable chat provider configured"))
			return
		}
		ctx, cancel := context.WithTimeout(d.ctx, chatTimeout)
		defer cancel()
		reply, err := session.Send(ctx, req.Message)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, bus.ChatResponse{Reply: reply})

	case bus.CmdChatReset:
		d.mu.RLock()
		session := d.chat
		d.mu.RUnlock()
		if session != nil {
			session.Reset()
		}
		fmt.Fprint(c, "OK chat reset\n")

	case bus.CmdHistoryList:
		entries, err := d.history.List()
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, nonNil(entries))

	case bus.CmdHistorySearch:
		var req bus.SearchRequest
		if !decode(c, payload, &req) {
			return
		}
		entries, err := d.history.Search(req.Query)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, nonNil(entries))

	case bus.CmdHistoryShow:
		var req bus.IDRequest
		if !decode(c, payload, &req) {
			return
		}
		entry, err := d.resolveEntry(req.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, entry)

	case bus.CmdHistoryDelete:
		var req bus.IDRequest
		if !decode(c, payload, &req) {
			return
		}
		if err := d.history.Delete(req.ID); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK deleted\n")

	case bus.CmdHistoryClear:
		if err := d.history.Clear(); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK cleared\n")

	case bus.CmdEnhance:
		var req bus.EnhanceRequest
		if !decode(c, payload, &req) {
			return
		}
		entry, err := d.enhance(req)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, entry)

	case bus.CmdEdit:
		var req bus.EditRequest
		if !decode(c, payload, &req) {
			return
		}
		entry, err := d.edit(req)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondJSON(c, entry)

	case bus.CmdCopy:
		var req bus.IDRequest
		if !decode(c, payload, &req) {
			return
		}
		entry, err := d.resolveEntry(req.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := d.copyText(entry.Result.Prompt); err != nil {
			respondErr(c, err)
			return
		}
		fmt.Fprint(c, "OK copied\n")

	case bus.CmdVersion:
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)

	case bus.CmdQuit:
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()

	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

func (d *Daemon) stopRecording() error {
	ctx, cancel := context.WithTimeout(d.ctx, stopTimeout)
	defer cancel()
	_, err := d.pipeline.Stop(ctx)
	return err
}

func (d *Daemon) statusLine() string {
	snap := d.pipeline.Snapshot()
	cfg := d.manager.GetConfig()

	count := 0
	if entries, err := d.history.List(); err == nil {
		count = len(entries)
	} else {
		log.Printf("daemon: history count: %v", err)
	}

	return fmt.Sprintf("state=%s grounding=%t language=%s buffer=%d history=%d",
		snap.Status, d.groundingOn(), cfg.General.Language, snap.Fragments, count)
}

// convert elaborates text into a prompt and stores the result. Empty text
// means the current transcript buffer. The stored entry comes back so the
// caller sees exactly what history now holds.
func (d *Daemon) convert(req bus.ConvertRequest) (history.Entry, error) {
	input := strings.TrimSpace(req.Text)
	if input == "" {
		input = strings.TrimSpace(d.pipeline.Transcript())
	}
	if input == "" {
		return history.Entry{}, fmt.Errorf("nothing to convert: transcript buffer is empty")
	}

	grounded := d.groundingOn()
	if req.Grounding != nil {
		grounded = *req.Grounding
	}

	d.mu.RLock()
	converter := d.converter
	d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(d.ctx, convertTimeout)
	defer cancel()

	result, citations, err := converter.Convert(ctx, input, grounded)
	if err != nil {
		return history.Entry{}, err
	}

	entry, err := d.history.Append(history.Entry{
		Input:     input,
		Language:  result.Language,
		Grounded:  grounded,
		Result:    toHistoryResult(result),
		Citations: toHistoryCitations(citations),
	})
	if err != nil {
		return history.Entry{}, fmt.Errorf("conversion succeeded but saving it failed: %w", err)
	}

	if d.shouldCopy(req.Copy) {
		if err := d.copyText(entry.Result.Prompt); err != nil {
			log.Printf("daemon: clipboard copy failed: %v", err)
		}
	}

	d.notifier.PromptReady("Prompt Ready", clip(entry.Result.Prompt, 120))
	return entry, nil
}

func (d *Daemon) enhance(req bus.EnhanceRequest) (history.Entry, error) {
	if len(req.Snippets) == 0 {
		return history.Entry{}, fmt.Errorf("no snippets given")
	}
	entry, err := d.resolveEntry(req.ID)
	if err != nil {
		return history.Entry{}, err
	}
	prompt, err := enhance.Apply(entry.Result.Prompt, req.Snippets...)
	if err != nil {
		return history.Entry{}, err
	}
	entry.Result.Prompt = prompt
	if err := d.history.Update(entry); err != nil {
		return history.Entry{}, err
	}
	return entry, nil
}

func (d *Daemon) edit(req bus.EditRequest) (history.Entry, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return history.Entry{}, fmt.Errorf("empty prompt")
	}
	entry, err := d.resolveEntry(req.ID)
	if err != nil {
		return history.Entry{}, err
	}
	entry.Result.Prompt = prompt
	if err := d.history.Update(entry); err != nil {
		return history.Entry{}, err
	}
	return entry, nil
}

// resolveEntry returns the entry with id, or the newest one when id is
// empty.
func (d *Daemon) resolveEntry(id string) (history.Entry, error) {
	if id != "" {
		return d.history.Get(id)
	}
	entries, err := d.history.List()
	if err != nil {
		return history.Entry{}, err
	}
	if len(entries) == 0 {
		return history.Entry{}, fmt.Errorf("history is empty")
	}
	return entries[0], nil
}

func (d *Daemon) shouldCopy(override *bool) bool {
	if override != nil {
		return *override
	}
	return d.manager.GetConfig().Clipboard.AutoCopy
}

func (d *Daemon) copyText(text string) error {
	d.mu.RLock()
	injector := d.injector
	d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(d.ctx, copyTimeout)
	defer cancel()
	return injector.Copy(ctx, text)
}

// decode unmarshals a JSON payload into req. An empty payload leaves req
// zero, so bare commands and omitted fields behave the same.
func decode(c io.Writer, payload string, req any) bool {
	if payload == "" {
		return true
	}
	if err := json.Unmarshal([]byte(payload), req); err != nil {
		respondErr(c, fmt.Errorf("bad payload: %v", err))
		return false
	}
	return true
}

func respondJSON(c io.Writer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		respondErr(c, fmt.Errorf("encode response: %v", err))
		return
	}
	fmt.Fprintf(c, "OK %s\n", data)
}

// respondErr writes an ERR line. Responses are single line, so newlines in
// the error text are flattened.
func respondErr(c io.Writer, err error) {
	fmt.Fprintf(c, "ERR %s\n", strings.ReplaceAll(err.Error(), "\n", " "))
}

// nonNil keeps empty history lists encoding as [] rather than null.
func nonNil(entries []history.Entry) []history.Entry {
	if entries == nil {
		return []history.Entry{}
	}
	return entries
}

func toHistoryResult(r convert.Result) history.Result {
	return history.Result{
		Translation: r.Translation,
		Prompt:      r.Prompt,
		Category:    r.Category,
		Rationale:   r.Rationale,
	}
}

func toHistoryCitations(cs []gemini.Citation) []history.Citation {
	if len(cs) == 0 {
		return nil
	}
	out := make([]history.Citation, len(cs))
	for i, c := range cs {
		out[i] = history.Citation{URI: c.URI, Title: c.Title}
	}
	return out
}

// clip shortens s for a notification body.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
