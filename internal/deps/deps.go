// Package deps checks the external tools the daemon shells out to.
package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Name      string
	Installed bool
	Required  bool
	Path      string
	Version   string
	Purpose   string
}

// Tool describes one external binary
type Tool struct {
	Name        string
	VersionArgs []string
	Required    bool
	Purpose     string
}

// Tools lists every external binary the app can shell out to.
var Tools = []Tool{
	{Name: "pw-record", VersionArgs: []string{"--version"}, Required: true, Purpose: "microphone capture (PipeWire)"},
	{Name: "wl-copy", VersionArgs: []string{"--version"}, Required: true, Purpose: "clipboard delivery (wl-clipboard)"},
	{Name: "wl-paste", VersionArgs: []string{"--version"}, Required: false, Purpose: "clipboard verification (wl-clipboard)"},
	{Name: "notify-send", VersionArgs: []string{"--version"}, Required: false, Purpose: "desktop notifications (libnotify)"},
}

// Check reports the status of one tool by name. Names outside Tools
// are probed with a plain --version.
func Check(name string) Status {
	for _, t := range Tools {
		if t.Name == name {
			return check(t)
		}
	}
	return check(Tool{Name: name, VersionArgs: []string{"--version"}})
}

// CheckAll reports every tool, in Tools order.
func CheckAll() []Status {
	statuses := make([]Status, 0, len(Tools))
	for _, t := range Tools {
		statuses = append(statuses, check(t))
	}
	return statuses
}

// MissingRequired returns the names of required tools not found in PATH.
func MissingRequired() []string {
	var missing []string
	for _, s := range CheckAll() {
		if s.Required && !s.Installed {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

func check(t Tool) Status {
	path, err := exec.LookPath(t.Name)
	if err != nil {
		return Status{Name: t.Name, Required: t.Required, Purpose: t.Purpose}
	}

	status := Status{
		Name:      t.Name,
		Installed: true,
		Required:  t.Required,
		Path:      path,
		Purpose:   t.Purpose,
	}

	// first output line carries the version for all of these tools
	output, err := exec.Command(path, t.VersionArgs...).Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}
