package convert

import (
	"fmt"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
)

// BuildSystemPrompt generates the system instruction for one conversion
func BuildSystemPrompt(lang language.Language, grounded bool) string {
	prompt := "You are a prompt writer for image and video generation models.\n"
	prompt += "The user speaks a rough scene idea, often in Telugu, Hindi, English, or a mix of them.\n\n"
	prompt += "Tasks:\n"
	prompt += "- Translate the idea into plain English\n"
	prompt += "- Elaborate it into one rich generation prompt covering subject, setting, lighting, mood, composition, and style\n"
	prompt += "- Classify the prompt with one short category label (e.g., portrait, landscape, product, abstract)\n"
	prompt += "- Justify the elaboration in one or two sentences\n\n"
	prompt += "Rules:\n"
	prompt += "- Preserve every concrete detail the user gave; invent only supporting detail\n"
	prompt += "- Keep the prompt usable as a single paragraph, no lists inside it\n"
	prompt += "- Reply with a single JSON object with exactly these string fields: translation, prompt, category, rationale\n"
	prompt += "- Output ONLY the JSON object, nothing else\n"

	if grounded {
		prompt += "- Use web search when the idea names real people, places, works, or events, and ground the prompt in what you find\n"
	}

	switch lang.Code {
	case language.Auto.Code:
		prompt += "\nThe input language is not known in advance; detect it yourself.\n"
	case language.Mixed.Code:
		prompt += "\nThe input mixes languages; translate all of it into English.\n"
	default:
		prompt += fmt.Sprintf("\nThe input language is %s.\n", lang.Name)
	}

	return prompt
}

// previewSystemPrompt asks for a bare one-line translation for the live view
const previewSystemPrompt = "Translate the user's words into one short English sentence. " +
	"If they are already English, tidy them up. Reply with the translation only."
