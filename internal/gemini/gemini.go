package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client is a minimal generateContent client. One request, one response,
// no retries; a failed call surfaces as *RequestError or a transport
// error and the caller decides what to do.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire roles accepted by the API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Content is one conversation turn in wire roles ("user" or "model").
type Content struct {
	Role string
	Text string
}

// GenerateRequest describes one generateContent call.
type GenerateRequest struct {
	Contents        []Content
	System          string
	Temperature     float64
	MaxOutputTokens int
	// DisableThinking zeroes the thinking budget for latency-sensitive
	// calls.
	DisableThinking bool
	// JSONSchema forces a structured application/json response.
	JSONSchema json.RawMessage
	// GoogleSearch attaches the search grounding tool. Mutually
	// exclusive with JSONSchema on the API side.
	GoogleSearch bool
}

type GenerateResponse struct {
	Text      string
	Citations []Citation
	Usage     Usage
}

// Citation is one web source that grounded the response.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// RequestError is a failure reported by the API itself, as opposed to a
// transport failure.
type RequestError struct {
	StatusCode int
	Code       int
	Message    string
	Status     string
}

func (e *RequestError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: %s (%d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gemini: http %d: %s", e.StatusCode, e.Message)
}

// Gemini request/response wire types
type generateRequest struct {
	Contents          []wireContent     `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	SystemInstruction *systemInst       `json:"systemInstruction,omitempty"`
	Tools             []wireTool        `json:"tools,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64         `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
	ThinkingConfig   *thinkingConfig `json:"thinkingConfig,omitempty"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type systemInst struct {
	Parts []wirePart `json:"parts"`
}

type wireTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateResponse struct {
	Candidates    []candidate `json:"candidates"`
	UsageMetadata *usageMeta  `json:"usageMetadata,omitempty"`
	Error         *wireError  `json:"error,omitempty"`
}

type candidate struct {
	Content           wireContent        `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks,omitempty"`
}

type groundingChunk struct {
	Web *webSource `json:"web,omitempty"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type usageMeta struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (c *Client) buildRequest(req GenerateRequest) generateRequest {
	var contents []wireContent
	for _, content := range req.Contents {
		contents = append(contents, wireContent{
			Role:  content.Role,
			Parts: []wirePart{{Text: content.Text}},
		})
	}

	out := generateRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	}

	if req.DisableThinking {
		out.GenerationConfig.ThinkingConfig = &thinkingConfig{ThinkingBudget: 0}
	}
	if len(req.JSONSchema) > 0 {
		out.GenerationConfig.ResponseMimeType = "application/json"
		out.GenerationConfig.ResponseSchema = req.JSONSchema
	}
	if req.GoogleSearch {
		out.Tools = []wireTool{{GoogleSearch: &struct{}{}}}
	}
	if req.System != "" {
		out.SystemInstruction = &systemInst{
			Parts: []wirePart{{Text: req.System}},
		}
	}

	return out
}

// Generate performs one generateContent call.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	jsonBody, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var geminiResp generateResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &RequestError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if geminiResp.Error != nil {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Code:       geminiResp.Error.Code,
			Message:    geminiResp.Error.Message,
			Status:     geminiResp.Error.Status,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no candidates returned")
	}

	cand := geminiResp.Candidates[0]

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}

	out := &GenerateResponse{Text: text.String()}
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Citations = append(out.Citations, Citation{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}
	if geminiResp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     geminiResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: geminiResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      geminiResp.UsageMetadata.TotalTokenCount,
		}
	}

	return out, nil
}
