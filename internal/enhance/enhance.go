// Package enhance holds the canned snippet registry used to punch up
// converted prompts from the CLI and the TUI.
package enhance

import (
	"fmt"
	"strings"
)

// Snippet is one canned enhancement.
type Snippet struct {
	ID       string // stable id used on the command line
	Label    string // human label for pickers
	Text     string // what gets appended to the prompt
	Category string // lighting, detail, color, style, composition, mood
}

// snippets is the master list, grouped by category
var snippets = []Snippet{
	{ID: "cinematic", Label: "Cinematic lighting", Text: "cinematic lighting, dramatic rim light, film still", Category: "lighting"},
	{ID: "golden-hour", Label: "Golden hour", Text: "warm golden hour sunlight, long soft shadows", Category: "lighting"},
	{ID: "photoreal", Label: "Photorealistic detail", Text: "photorealistic, ultra detailed, sharp focus, 8k", Category: "detail"},
	{ID: "festival", Label: "Festival colors", Text: "vibrant festival colors, marigold garlands, glowing lanterns", Category: "color"},
	{ID: "watercolor", Label: "Watercolor", Text: "soft watercolor wash, paper texture, loose brushwork", Category: "style"},
	{ID: "anime", Label: "Anime style", Text: "anime style, clean line art, cel shading", Category: "style"},
	{ID: "wide-angle", Label: "Wide angle", Text: "wide angle shot, deep perspective", Category: "composition"},
	{ID: "closeup", Label: "Close-up", Text: "intimate close-up, shallow depth of field, creamy bokeh", Category: "composition"},
	{ID: "monsoon", Label: "Monsoon mood", Text: "overcast monsoon sky, wet reflective streets, light mist", Category: "mood"},
	{ID: "night-neon", Label: "Neon night", Text: "night scene, neon signs, rain slick reflections", Category: "mood"},
}

// index maps snippet ids for fast lookup
var index map[string]Snippet

func init() {
	index = make(map[string]Snippet, len(snippets))
	for _, s := range snippets {
		index[s.ID] = s
	}
}

// Get returns the snippet with the given id.
func Get(id string) (Snippet, bool) {
	s, ok := index[id]
	return s, ok
}

// List returns all snippets in registry order.
func List() []Snippet {
	result := make([]Snippet, len(snippets))
	copy(result, snippets)
	return result
}

// Apply appends the texts of the chosen snippets to prompt, comma joined.
// Snippets whose text already appears in the prompt are skipped, so applying
// twice is harmless. Unknown ids are an error.
func Apply(prompt string, ids ...string) (string, error) {
	result := strings.TrimSpace(prompt)
	for _, id := range ids {
		snippet, ok := Get(id)
		if !ok {
			return "", fmt.Errorf("enhance: unknown snippet: %s", id)
		}
		if strings.Contains(result, snippet.Text) {
			continue
		}
		if result == "" {
			result = snippet.Text
		} else {
			result += ", " + snippet.Text
		}
	}
	return result, nil
}
