package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Session is one caller-owned conversation with a design-tool host. It
// replaces any module-level "current connection" global: concurrent
// sessions each carry their own Host and correlation id, and tests get an
// isolated fake per session.
type Session struct {
	id     string
	host   Host
	logger *slog.Logger
}

// NewSession creates a session over the given host.
func NewSession(h Host, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:     uuid.NewString(),
		host:   h,
		logger: logger,
	}
}

// ID returns the session correlation id.
func (s *Session) ID() string {
	return s.id
}

// send issues one command with per-request correlation ids attached.
func (s *Session) send(ctx context.Context, name string, params map[string]any) (Result, error) {
	if params == nil {
		params = make(map[string]any)
	}
	params["sessionId"] = s.id
	params["requestId"] = uuid.NewString()

	result, err := s.host.SendCommand(ctx, name, params)
	if err != nil {
		return Result{}, fmt.Errorf("host command %q: %w", name, err)
	}
	return result, nil
}

// ApplyBinding binds a node property to a variable on the host side.
// A reply with success:false is returned as an error carrying the host's
// reason so per-property apply failures stay reportable.
func (s *Session) ApplyBinding(ctx context.Context, nodeID, property, variableID string) error {
	result, err := s.send(ctx, "apply_binding", map[string]any{
		"nodeId":     nodeID,
		"property":   property,
		"variableId": variableID,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("apply_binding rejected: %s", result.Error)
	}
	s.logger.Debug("binding applied",
		"node", nodeID,
		"property", property,
		"variable", variableID)
	return nil
}

// ReadNode fetches a node's live property values from the host.
func (s *Session) ReadNode(ctx context.Context, nodeID string) ([]byte, error) {
	result, err := s.send(ctx, "read_node", map[string]any{"nodeId": nodeID})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("read_node rejected: %s", result.Error)
	}
	return result.Payload, nil
}
