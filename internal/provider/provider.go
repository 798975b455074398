package provider

import "sort"

// Provider describes one API backend the app can talk to.
type Provider interface {
	Name() string
	RequiresAPIKey() bool
	ValidateAPIKey(key string) bool
	Models() []Model
	DefaultModel(t ModelType) string
}

var registry = make(map[string]Provider)

func init() {
	Register(&GeminiProvider{})
	Register(&OpenAIProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// Get returns a provider by name, or nil if not found
func Get(name string) Provider {
	return registry[name]
}

// List returns all registered provider names, sorted for stable output
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindModel looks up a model id across a provider's catalog.
// Returns nil when the provider or the model is unknown.
func FindModel(providerName, id string) *Model {
	p := Get(providerName)
	if p == nil {
		return nil
	}
	for _, m := range p.Models() {
		if m.ID == id {
			return &m
		}
	}
	return nil
}
