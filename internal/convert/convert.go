// Package convert turns raw speech transcripts into elaborated English
// generation prompts through the Gemini REST API.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/gemini"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2048

	previewTemperature = 0.1
	previewMaxTokens   = 128
)

// Generator is the slice of the Gemini client the converter needs.
type Generator interface {
	Generate(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// Detector guesses the input language for the prompt hint.
type Detector interface {
	Detect(text string) language.Language
}

// Config holds converter configuration
type Config struct {
	Language         string  // forced language hint; "auto" or empty enables detection
	Temperature      float64 // sampling temperature for conversions
	MaxTokens        int     // output cap for conversions
	PreviewMaxTokens int     // output cap for previews
}

// Result is the structured output of one conversion. The four JSON fields
// are the model's contract; all of them must come back non-empty.
type Result struct {
	Translation string `json:"translation"`
	Prompt      string `json:"prompt"`
	Category    string `json:"category"`
	Rationale   string `json:"rationale"`

	// Language is the hint code the conversion ran with, kept for history.
	Language string `json:"-"`
}

// ParseError reports a model reply that did not satisfy the JSON contract.
type ParseError struct {
	Reason string
	Raw    string // the reply as received, for logs
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("convert: bad model reply: %s", e.Reason)
}

// resultSchema pins ungrounded responses to the four required fields.
var resultSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"translation": {"type": "STRING"},
		"prompt": {"type": "STRING"},
		"category": {"type": "STRING"},
		"rationale": {"type": "STRING"}
	},
	"required": ["translation", "prompt", "category", "rationale"]
}`)

// Converter turns transcripts into generation prompts.
type Converter struct {
	gen      Generator
	detector Detector
	cfg      Config
}

// New creates a Converter. detector may be nil, in which case undetectable
// input falls back to the auto hint.
func New(gen Generator, detector Detector, cfg Config) *Converter {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.PreviewMaxTokens == 0 {
		cfg.PreviewMaxTokens = previewMaxTokens
	}
	return &Converter{gen: gen, detector: detector, cfg: cfg}
}

// LanguageHint resolves the hint for input: the configured language when one
// is forced, otherwise detection.
func (c *Converter) LanguageHint(input string) language.Language {
	if c.cfg.Language != "" && c.cfg.Language != language.Auto.Code {
		return language.FromCode(c.cfg.Language)
	}
	if c.detector == nil {
		return language.Auto
	}
	return c.detector.Detect(input)
}

// Convert elaborates input into a generation prompt. grounded attaches the
// web search tool and lifts citations from the grounding metadata; otherwise
// the response is pinned to JSON by schema. The call is made exactly once,
// failures are never retried.
func (c *Converter) Convert(ctx context.Context, input string, grounded bool) (Result, []gemini.Citation, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, nil, fmt.Errorf("convert: empty transcript")
	}

	hint := c.LanguageHint(input)
	req := gemini.GenerateRequest{
		Contents:        []gemini.Content{{Role: gemini.RoleUser, Text: input}},
		System:          BuildSystemPrompt(hint, grounded),
		Temperature:     c.cfg.Temperature,
		MaxOutputTokens: c.cfg.MaxTokens,
	}
	if grounded {
		req.GoogleSearch = true
	} else {
		req.JSONSchema = resultSchema
	}

	resp, err := c.gen.Generate(ctx, req)
	if err != nil {
		return Result{}, nil, err
	}

	result, err := parseResult(resp.Text)
	if err != nil {
		return Result{}, nil, err
	}
	result.Language = hint.Code
	return result, resp.Citations, nil
}

// Preview returns a quick English rendering of input for the live view.
// Best effort: every failure is logged and swallowed, the caller always
// gets a plain string, possibly empty.
func (c *Converter) Preview(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	resp, err := c.gen.Generate(ctx, gemini.GenerateRequest{
		Contents:        []gemini.Content{{Role: gemini.RoleUser, Text: input}},
		System:          previewSystemPrompt,
		Temperature:     previewTemperature,
		MaxOutputTokens: c.cfg.PreviewMaxTokens,
		DisableThinking: true,
	})
	if err != nil {
		log.Printf("convert: preview failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Text)
}

func parseResult(text string) (Result, error) {
	raw := stripFences(text)
	if raw == "" {
		return Result{}, &ParseError{Reason: "empty reply", Raw: text}
	}

	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: text}
	}

	checks := []struct {
		name  string
		value string
	}{
		{"translation", res.Translation},
		{"prompt", res.Prompt},
		{"category", res.Category},
		{"rationale", res.Rationale},
	}
	for _, check := range checks {
		if strings.TrimSpace(check.value) == "" {
			return Result{}, &ParseError{Reason: "missing field " + check.name, Raw: text}
		}
	}
	return res, nil
}

// stripFences removes a markdown code fence around a JSON reply, which
// grounded generations often add.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 && !strings.ContainsAny(text[:idx], "{[") {
		// the fence line carries only a language tag like "json"
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
