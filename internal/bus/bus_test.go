package bus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPidManagerBasics(t *testing.T) {
	tempDir := t.TempDir()

	testPidManager := &pidManager{
		path: filepath.Join(tempDir, PidName),
	}

	t.Run("create and remove PID file", func(t *testing.T) {
		err := testPidManager.create()
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		pidData, err := os.ReadFile(testPidManager.path)
		if err != nil {
			t.Fatalf("failed to read PID file: %v", err)
		}

		expectedPid := strconv.Itoa(os.Getpid())
		if string(pidData) != expectedPid {
			t.Errorf("PID file contains %q, expected %q", string(pidData), expectedPid)
		}

		err = testPidManager.remove()
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		if _, err := os.Stat(testPidManager.path); !os.IsNotExist(err) {
			t.Error("PID file should not exist after removal")
		}
	})

	t.Run("checkExisting with no PID file", func(t *testing.T) {
		err := testPidManager.checkExisting()
		if err != nil {
			t.Errorf("checkExisting should not error when no PID file exists: %v", err)
		}
	})

	t.Run("checkExisting with current process", func(t *testing.T) {
		err := testPidManager.create()
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		defer testPidManager.remove()

		err = testPidManager.checkExisting()
		if err == nil {
			t.Error("checkExisting should fail when process is running")
		}
	})

	t.Run("checkExisting with stale PID file", func(t *testing.T) {
		// PID max on Linux defaults to 4194304; this one can't be alive
		stalePid := "99999999"
		err := os.WriteFile(testPidManager.path, []byte(stalePid), 0o600)
		if err != nil {
			t.Fatalf("failed to write stale PID file: %v", err)
		}
		defer testPidManager.remove()

		err = testPidManager.checkExisting()
		if err != nil {
			t.Errorf("checkExisting should treat a dead PID as stale: %v", err)
		}
	})

	t.Run("checkExisting with garbage PID file", func(t *testing.T) {
		err := os.WriteFile(testPidManager.path, []byte("not-a-pid"), 0o600)
		if err != nil {
			t.Fatalf("failed to write PID file: %v", err)
		}
		defer testPidManager.remove()

		if err := testPidManager.checkExisting(); err != nil {
			t.Errorf("checkExisting should treat garbage as stale: %v", err)
		}
	})
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantCmd byte
		wantPay string
		wantErr bool
	}{
		{"bare command", "r\n", 'r', "", false},
		{"command with payload", `x {"text":"hi"}` + "\n", 'x', `{"text":"hi"}`, false},
		{"no trailing newline", "s", 's', "", false},
		{"empty", "\n", 0, "", true},
		{"missing space", `x{"text":"hi"}`, 0, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, payload, err := ParseRequest(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q) failed: %v", tc.line, err)
			}
			if cmd != tc.wantCmd || payload != tc.wantPay {
				t.Errorf("ParseRequest(%q) = (%q, %q), want (%q, %q)", tc.line, cmd, payload, tc.wantCmd, tc.wantPay)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		resp     string
		wantKind string
		wantBody string
	}{
		{"OK recording\n", "OK", "recording"},
		{"OK", "OK", ""},
		{`OK {"text":"hello world"}`, "OK", `{"text":"hello world"}`},
		{"STATUS state=idle grounding=on", "STATUS", "state=idle grounding=on"},
		{"ERR something broke", "ERR", "something broke"},
	}

	for _, tc := range tests {
		kind, body := ParseResponse(tc.resp)
		if kind != tc.wantKind || body != tc.wantBody {
			t.Errorf("ParseResponse(%q) = (%q, %q), want (%q, %q)", tc.resp, kind, body, tc.wantKind, tc.wantBody)
		}
	}
}

func TestRoundTripWithPayload(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	go func() {
		defer server.Close()
		line, err := bufio.NewReader(server).ReadString('\n')
		if err != nil {
			t.Errorf("server read: %v", err)
			return
		}
		cmd, payload, err := ParseRequest(line)
		if err != nil {
			t.Errorf("parse request: %v", err)
			return
		}
		if cmd != CmdConvert {
			t.Errorf("cmd = %q, want %q", cmd, CmdConvert)
		}
		var req ConvertRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			t.Errorf("decode payload: %v", err)
			return
		}
		if req.Text != "Oka pilla akasamlo egurutundi" {
			t.Errorf("payload text = %q", req.Text)
		}
		fmt.Fprint(server, "OK done\n")
	}()

	resp, err := roundTrip(client, CmdConvert, ConvertRequest{Text: "Oka pilla akasamlo egurutundi"})
	if err != nil {
		t.Fatalf("roundTrip: %v", err)
	}
	if resp != "OK done" {
		t.Errorf("resp = %q, want %q", resp, "OK done")
	}
}

func TestRoundTripBareCommand(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	go func() {
		defer server.Close()
		line, err := bufio.NewReader(server).ReadString('\n')
		if err != nil {
			t.Errorf("server read: %v", err)
			return
		}
		if line != "s\n" {
			t.Errorf("wire line = %q, want %q", line, "s\n")
		}
		fmt.Fprint(server, "STATUS state=idle\n")
	}()

	resp, err := roundTrip(client, CmdStatus, nil)
	if err != nil {
		t.Fatalf("roundTrip: %v", err)
	}
	kind, body := ParseResponse(resp)
	if kind != RespStatus || body != "state=idle" {
		t.Errorf("parsed (%q, %q)", kind, body)
	}
}
