package provider

// ModelType represents what a model is for
type ModelType int

const (
	// Live models transcribe speech over a realtime websocket.
	Live ModelType = iota
	// Text models take a text request and return a text reply. Prompt
	// conversion, previews and chat all draw from this pool.
	Text
)

// Model represents a model with its metadata
type Model struct {
	ID                 string    // unique identifier (e.g. "gemini-2.5-flash")
	Name               string    // display name (e.g. "Gemini 2.5 Flash")
	Description        string    // short description for pickers
	Type               ModelType // live or text
	SupportedLanguages []string  // input language codes the model handles
}

// SupportsLanguage returns true if the model supports the given language code.
// Auto-detect (empty string) is always supported.
func (m *Model) SupportsLanguage(code string) bool {
	if code == "" {
		return true
	}
	for _, supported := range m.SupportedLanguages {
		if supported == code {
			return true
		}
	}
	return false
}

// ModelsOfType filters a provider's catalog down to one model type
func ModelsOfType(p Provider, t ModelType) []Model {
	var models []Model
	for _, m := range p.Models() {
		if m.Type == t {
			models = append(models, m)
		}
	}
	return models
}
