package domain

import (
	"encoding/json"
	"time"
)

// AckBody is returned verbatim for every accepted payload.
var AckBody = []byte(`{"status": "received"}`)

const (
	AckContentType = "application/json"
	Banner         = "Received Diagnostics Data:"
)

// Payload is a syntactically valid JSON document exactly as the device sent it.
type Payload struct {
	Raw json.RawMessage
}

func (p Payload) Size() int {
	return len(p.Raw)
}

// Event is what gets fanned out to live viewers after a payload is rendered.
type Event struct {
	ID         string          `json:"id"`
	RequestID  string          `json:"request_id,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	RemoteAddr string          `json:"remote_addr,omitempty"`
	Size       int             `json:"size"`
	Payload    json.RawMessage `json:"payload"`
}
