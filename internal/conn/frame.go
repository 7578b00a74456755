package conn

import (
	"bytes"
	"encoding/json"
	"fmt"

	"taskflow/task"
)

// Frame type discriminators used by both channels.
const (
	TypeConnection   = "connection"
	TypeChatResponse = "chat_response"
	TypeTaskUpdate   = "task_update"
	TypeError        = "error"
	TypePing         = "ping"
	TypePong         = "pong"
)

// Frame is the envelope for every structured message on a channel.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ConnectionData is the payload of a "connection" frame.
type ConnectionData struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ChatResponseData is the payload of a "chat_response" frame.
type ChatResponseData struct {
	Response string `json:"response"`
}

// ErrorData is the payload of an "error" frame.
type ErrorData struct {
	Message string `json:"message"`
}

// TaskUpdateData is the payload of a "task_update" frame. Tasks stays nil
// when the field is absent, which callers must treat as a malformed update.
type TaskUpdateData struct {
	Tasks []task.Task `json:"tasks"`
}

// ParseFrame decodes one inbound text frame. The server mostly sends JSON
// envelopes, but keepalive probes may arrive as the bare strings "ping" and
// "pong"; both forms normalize to a Frame with the matching type and no data.
func ParseFrame(raw []byte) (Frame, error) {
	switch string(bytes.TrimSpace(raw)) {
	case TypePing:
		return Frame{Type: TypePing}, nil
	case TypePong:
		return Frame{Type: TypePong}, nil
	}

	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("parse frame: %w", err)
	}
	if f.Type == "" {
		return Frame{}, fmt.Errorf("parse frame: missing type discriminator")
	}
	return f, nil
}

// Connection decodes the frame's payload as ConnectionData.
func (f Frame) Connection() (ConnectionData, error) {
	var d ConnectionData
	if err := json.Unmarshal(f.Data, &d); err != nil {
		return ConnectionData{}, fmt.Errorf("decode connection data: %w", err)
	}
	return d, nil
}

// ChatResponse decodes the frame's payload as ChatResponseData.
func (f Frame) ChatResponse() (ChatResponseData, error) {
	var d ChatResponseData
	if err := json.Unmarshal(f.Data, &d); err != nil {
		return ChatResponseData{}, fmt.Errorf("decode chat response data: %w", err)
	}
	return d, nil
}

// ErrorMessage decodes the frame's payload as ErrorData and returns the
// message, falling back to a generic string when the payload is unusable.
func (f Frame) ErrorMessage() string {
	var d ErrorData
	if err := json.Unmarshal(f.Data, &d); err != nil || d.Message == "" {
		return "Unknown error"
	}
	return d.Message
}

// TaskUpdate decodes the frame's payload as TaskUpdateData. The boolean is
// false when the tasks field is absent or not a well-formed array, in which
// case the frame must be discarded without touching displayed state.
func (f Frame) TaskUpdate() ([]task.Task, bool) {
	var d TaskUpdateData
	if err := json.Unmarshal(f.Data, &d); err != nil {
		return nil, false
	}
	if d.Tasks == nil {
		return nil, false
	}
	return d.Tasks, true
}
