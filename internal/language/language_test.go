package language

import "testing"

func TestFromCode(t *testing.T) {
	tests := []struct {
		code     string
		wantCode string
		wantName string
	}{
		{"te", "te", "Telugu"},
		{"hi", "hi", "Hindi"},
		{"en", "en", "English"},
		{"TE", "te", "Telugu"},
		{" en ", "en", "English"},
		{"mixed", "mixed", "Mixed"},
		{"auto", "auto", "Auto-detect"},
		{"", "auto", "Auto-detect"},
		{"invalid", "auto", "Auto-detect"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := FromCode(tt.code)
			if got.Code != tt.wantCode {
				t.Errorf("FromCode(%q).Code = %q, want %q", tt.code, got.Code, tt.wantCode)
			}
			if got.Name != tt.wantName {
				t.Errorf("FromCode(%q).Name = %q, want %q", tt.code, got.Name, tt.wantName)
			}
		})
	}
}

func TestFromCodeTelugu(t *testing.T) {
	lang := FromCode("te")
	if lang.Code != "te" {
		t.Errorf("FromCode('te').Code = %q, want 'te'", lang.Code)
	}
	if lang.Name != "Telugu" {
		t.Errorf("FromCode('te').Name = %q, want 'Telugu'", lang.Name)
	}
	if lang.NativeName != "తెలుగు" {
		t.Errorf("FromCode('te').NativeName = %q, want 'తెలుగు'", lang.NativeName)
	}
}

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"te", true},
		{"hi", true},
		{"en", true},
		{"mixed", true},
		{"auto", true},
		{"HI", true},
		{"", true}, // auto is valid
		{"es", false},
		{"xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := IsValidCode(tt.code)
			if got != tt.want {
				t.Errorf("IsValidCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	list := List()
	want := []Language{Telugu, Hindi, English}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d languages, want %d", len(list), len(want))
	}
	for i, lang := range want {
		if list[i] != lang {
			t.Errorf("List()[%d] = %v, want %v", i, list[i], lang)
		}
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	want := []string{"auto", "te", "hi", "en", "mixed"}
	if len(codes) != len(want) {
		t.Fatalf("Codes() returned %d codes, want %d", len(codes), len(want))
	}
	for i, code := range want {
		if codes[i] != code {
			t.Errorf("Codes()[%d] = %q, want %q", i, codes[i], code)
		}
	}
}

func TestAuto(t *testing.T) {
	if Auto.Code != "auto" {
		t.Errorf("Auto.Code = %q, want 'auto'", Auto.Code)
	}
	if Auto.Name != "Auto-detect" {
		t.Errorf("Auto.Name = %q, want 'Auto-detect'", Auto.Name)
	}
}

// det is shared across detection tests; building a Detector loads models once.
var det = NewDetector()

func TestDetectScripts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"telugu script", "ఒక పిల్ల ఆకాశంలో ఎగురుతుంది", Telugu},
		{"devanagari script", "एक बच्ची आसमान में उड़ रही है", Hindi},
		{"telugu with english", "ఒక పిల్ల sky లో ఎగురుతుంది", Mixed},
		{"devanagari with english", "एक बच्ची flying in the sky", Mixed},
		{"empty", "", Auto},
		{"whitespace only", "   ", Auto},
		{"no letters", "1234 !?", Auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := det.Detect(tt.text)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectEnglish(t *testing.T) {
	got := det.Detect("The quick brown fox jumps over the lazy dog")
	if got != English {
		t.Errorf("Detect(english sentence) = %v, want %v", got, English)
	}
}

func TestDetectRomanized(t *testing.T) {
	// Romanized speech has no script signal, so the call is a model guess.
	// Any concrete language or Mixed is acceptable; Auto is not.
	got := det.Detect("Oka pilla akasamlo egurutundi")
	if got == Auto {
		t.Errorf("Detect(romanized) = %v, want a concrete guess", got)
	}
	if !IsValidCode(got.Code) {
		t.Errorf("Detect(romanized) returned unknown code %q", got.Code)
	}
}
