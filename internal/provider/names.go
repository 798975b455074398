package provider

// Provider name constants for config and registry
const (
	Gemini = "gemini"
	OpenAI = "openai"
)

// Environment variable names for API keys
const (
	EnvGeminiKey = "GEMINI_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// EnvVarFor returns the environment variable name for a provider's API key
func EnvVarFor(name string) string {
	switch name {
	case Gemini:
		return EnvGeminiKey
	case OpenAI:
		return EnvOpenAIKey
	default:
		return ""
	}
}
