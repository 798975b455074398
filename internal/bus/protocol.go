package bus

import (
	"fmt"
	"strings"
)

const ProtoVer = "0.1"

// Command bytes understood by the daemon.
const (
	CmdRecord        byte = 'r'
	CmdStop          byte = 'e'
	CmdToggle        byte = 't'
	CmdCancel        byte = 'c'
	CmdStatus        byte = 's'
	CmdBufferGet     byte = 'b'
	CmdBufferClear   byte = 'B'
	CmdGrounding     byte = 'g'
	CmdConvert       byte = 'x'
	CmdPreview       byte = 'p'
	CmdChatSend      byte = 'm'
	CmdChatReset     byte = 'M'
	CmdHistoryList   byte = 'h'
	CmdHistorySearch byte = 'f'
	CmdHistoryShow   byte = 'o'
	CmdHistoryDelete byte = 'd'
	CmdHistoryClear  byte = 'D'
	CmdEnhance       byte = 'n'
	CmdEdit          byte = 'u'
	CmdCopy          byte = 'y'
	CmdVersion       byte = 'v'
	CmdQuit          byte = 'q'
)

// Response kinds.
const (
	RespOK     = "OK"
	RespStatus = "STATUS"
	RespErr    = "ERR"
)

// ParseRequest splits a request line into command byte and payload. A
// request is one command byte, optionally a space and a JSON payload,
// terminated by a newline.
func ParseRequest(line string) (byte, string, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return 0, "", fmt.Errorf("empty request")
	}
	cmd := line[0]
	if len(line) == 1 {
		return cmd, "", nil
	}
	if line[1] != ' ' {
		return 0, "", fmt.Errorf("malformed request %q", line)
	}
	return cmd, strings.TrimSpace(line[2:]), nil
}

// ParseResponse splits a response line into kind (OK, STATUS, ERR) and body.
func ParseResponse(resp string) (kind, body string) {
	kind, body, _ = strings.Cut(strings.TrimSpace(resp), " ")
	return kind, body
}

// Request payloads. Optional bools are pointers so "absent" and "false"
// stay distinguishable.

type ConvertRequest struct {
	Text      string `json:"text"`
	Grounding *bool  `json:"grounding,omitempty"`
	Copy      *bool  `json:"copy,omitempty"`
}

type PreviewRequest struct {
	Text string `json:"text"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type EnhanceRequest struct {
	ID       string   `json:"id"`
	Snippets []string `json:"snippets"`
}

type EditRequest struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// Response payloads carried inside OK bodies.

type BufferResponse struct {
	Text string `json:"text"`
}

type PreviewResponse struct {
	Translation string `json:"translation"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
