package deps

import (
	"os/exec"
	"testing"
)

func TestCheckAll(t *testing.T) {
	statuses := CheckAll()

	if len(statuses) != len(Tools) {
		t.Fatalf("CheckAll() returned %d statuses, want %d", len(statuses), len(Tools))
	}

	// behavior depends on system - verify structure, not installation
	for i, s := range statuses {
		if s.Name != Tools[i].Name {
			t.Errorf("statuses[%d].Name = %q, want %q", i, s.Name, Tools[i].Name)
		}
		if s.Required != Tools[i].Required {
			t.Errorf("%s: Required = %v, want %v", s.Name, s.Required, Tools[i].Required)
		}
		if s.Purpose != Tools[i].Purpose {
			t.Errorf("%s: Purpose = %q, want %q", s.Name, s.Purpose, Tools[i].Purpose)
		}
		if s.Installed && s.Path == "" {
			t.Errorf("%s: installed but path empty", s.Name)
		}
		if !s.Installed && s.Path != "" {
			t.Errorf("%s: not installed but path non-empty", s.Name)
		}
	}
}

func TestCheck_NotInstalled(t *testing.T) {
	// a name that cannot exist in PATH
	status := Check("suvarna-prompt-no-such-tool")
	if status.Installed {
		t.Error("expected Installed=false for nonexistent tool")
	}
	if status.Path != "" {
		t.Error("expected empty path when not installed")
	}
}

func TestCheck_KnownTool(t *testing.T) {
	status := Check("pw-record")
	if status.Name != "pw-record" {
		t.Errorf("Name = %q, want pw-record", status.Name)
	}
	if !status.Required {
		t.Error("pw-record should be marked required")
	}

	if _, err := exec.LookPath("pw-record"); err == nil {
		if !status.Installed {
			t.Error("pw-record in PATH but Installed=false")
		}
	} else if status.Installed {
		t.Error("pw-record not in PATH but Installed=true")
	}
}

func TestMissingRequired(t *testing.T) {
	missing := MissingRequired()

	for _, name := range missing {
		if _, err := exec.LookPath(name); err == nil {
			t.Errorf("%s reported missing but found in PATH", name)
		}
		var required bool
		for _, tool := range Tools {
			if tool.Name == name {
				required = tool.Required
			}
		}
		if !required {
			t.Errorf("%s reported missing but not a required tool", name)
		}
	}
}
