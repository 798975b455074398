package language

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

// Language represents a supported input language
type Language struct {
	Code       string // short code (e.g., "te", "hi", "en")
	Name       string // English name (e.g., "Telugu")
	NativeName string // Native name (e.g., "తెలుగు")
}

// Speakable languages the conversion prompt knows how to translate from.
var (
	Telugu  = Language{Code: "te", Name: "Telugu", NativeName: "తెలుగు"}
	Hindi   = Language{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"}
	English = Language{Code: "en", Name: "English", NativeName: "English"}
)

// Mixed marks code-switched speech that blends more than one language.
var Mixed = Language{Code: "mixed", Name: "Mixed", NativeName: ""}

// Auto represents auto-detection - used when user doesn't specify a language
var Auto = Language{Code: "auto", Name: "Auto-detect", NativeName: ""}

// languages is the master list of speakable languages
var languages = []Language{Telugu, Hindi, English}

// codeIndex maps language codes to their Language structs for fast lookup
var codeIndex map[string]Language

func init() {
	codeIndex = make(map[string]Language, len(languages)+3)
	codeIndex[""] = Auto // unset means auto-detect
	codeIndex[Auto.Code] = Auto
	codeIndex[Mixed.Code] = Mixed
	for _, lang := range languages {
		codeIndex[lang.Code] = lang
	}
}

// FromCode returns the Language for the given code.
// Returns Auto if code is not found.
func FromCode(code string) Language {
	if lang, ok := codeIndex[normalize(code)]; ok {
		return lang
	}
	return Auto
}

// List returns the speakable languages (excluding Auto and Mixed)
func List() []Language {
	result := make([]Language, len(languages))
	copy(result, languages)
	return result
}

// Codes returns every accepted language code, including auto and mixed
func Codes() []string {
	codes := make([]string, 0, len(languages)+2)
	codes = append(codes, Auto.Code)
	for _, lang := range languages {
		codes = append(codes, lang.Code)
	}
	codes = append(codes, Mixed.Code)
	return codes
}

// IsValidCode returns true if the code is recognized (including empty for auto)
func IsValidCode(code string) bool {
	_, ok := codeIndex[normalize(code)]
	return ok
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// mixedThreshold is the minimum lingua confidence for a single-language call.
// Latin-script text below it is treated as code-switched.
const mixedThreshold = 0.60

// Detector guesses the language of a transcript. Building one loads lingua's
// language models, so callers should construct a single Detector and reuse it.
type Detector struct {
	lingua lingua.LanguageDetector
}

// NewDetector builds a detector restricted to the speakable languages.
func NewDetector() *Detector {
	return &Detector{
		lingua: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Telugu, lingua.Hindi, lingua.English).
			Build(),
	}
}

// Detect guesses the language of text. Script inspection settles native
// Telugu and Hindi; Latin-only text (English or romanized speech) goes
// through lingua. Text that mixes scripts, or that lingua cannot confidently
// place, comes back Mixed. Text with no letters at all comes back Auto.
func (d *Detector) Detect(text string) Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return Auto
	}

	var telugu, devanagari, latin bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Telugu, r):
			telugu = true
		case unicode.Is(unicode.Devanagari, r):
			devanagari = true
		case unicode.Is(unicode.Latin, r):
			latin = true
		}
	}

	scripts := 0
	for _, seen := range []bool{telugu, devanagari, latin} {
		if seen {
			scripts++
		}
	}
	switch {
	case scripts == 0:
		return Auto
	case scripts > 1:
		return Mixed
	case telugu:
		return Telugu
	case devanagari:
		return Hindi
	}

	values := d.lingua.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 || values[0].Value() < mixedThreshold {
		return Mixed
	}
	switch values[0].Language() {
	case lingua.Telugu:
		return Telugu
	case lingua.Hindi:
		return Hindi
	case lingua.English:
		return English
	}
	return Mixed
}
