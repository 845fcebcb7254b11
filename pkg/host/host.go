// Package host abstracts the design-tool side of the bridge. The engine
// never speaks a wire protocol itself; it issues named commands through a
// Host and the surrounding process owns timeout, retry, and reconnect.
package host

import (
	"context"
	"encoding/json"
)

// Result is the host's reply to one command.
type Result struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Host sends a named command with parameters to the design-tool side and
// waits for its reply. Implementations manage their own connection
// lifecycle; the engine only sequences calls.
type Host interface {
	SendCommand(ctx context.Context, name string, params map[string]any) (Result, error)
}
