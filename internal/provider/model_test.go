package provider

import "testing"

func TestSupportsLanguage(t *testing.T) {
	m := FindModel(Gemini, "gemini-2.5-flash")
	if m == nil {
		t.Fatal("gemini-2.5-flash not found")
	}

	tests := []struct {
		code string
		want bool
	}{
		{"", true},
		{"auto", true},
		{"te", true},
		{"hi", true},
		{"en", true},
		{"mixed", true},
		{"es", false},
	}

	for _, tc := range tests {
		if got := m.SupportsLanguage(tc.code); got != tc.want {
			t.Errorf("SupportsLanguage(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestModelsOfTypeDisjoint(t *testing.T) {
	p := Get(Gemini)
	live := ModelsOfType(p, Live)
	text := ModelsOfType(p, Text)

	if len(live)+len(text) != len(p.Models()) {
		t.Errorf("live (%d) + text (%d) != all (%d)", len(live), len(text), len(p.Models()))
	}
	for _, m := range live {
		if m.Type != Live {
			t.Errorf("ModelsOfType(Live) returned %s with type %d", m.ID, m.Type)
		}
	}
}

func TestFindModelUnknown(t *testing.T) {
	if m := FindModel(Gemini, "no-such-model"); m != nil {
		t.Errorf("FindModel(gemini, no-such-model) = %v, want nil", m)
	}
	if m := FindModel("no-such-provider", "gemini-2.5-flash"); m != nil {
		t.Errorf("FindModel(no-such-provider, ...) = %v, want nil", m)
	}
}
