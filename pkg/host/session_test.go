package host

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	lastName   string
	lastParams map[string]any
	result     Result
	err        error
}

func (r *recordingHost) SendCommand(_ context.Context, name string, params map[string]any) (Result, error) {
	r.lastName = name
	r.lastParams = params
	return r.result, r.err
}

func TestSessionIDsAreUnique(t *testing.T) {
	h := &recordingHost{result: Result{Success: true}}
	a := NewSession(h, nil)
	b := NewSession(h, nil)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestApplyBinding(t *testing.T) {
	h := &recordingHost{result: Result{Success: true}}
	sess := NewSession(h, nil)

	err := sess.ApplyBinding(context.Background(), "1:1", "fill", "V:primary")
	require.NoError(t, err)

	assert.Equal(t, "apply_binding", h.lastName)
	assert.Equal(t, "1:1", h.lastParams["nodeId"])
	assert.Equal(t, "fill", h.lastParams["property"])
	assert.Equal(t, "V:primary", h.lastParams["variableId"])
	assert.Equal(t, sess.ID(), h.lastParams["sessionId"])
	assert.NotEmpty(t, h.lastParams["requestId"])
}

func TestApplyBinding_RequestIDsDiffer(t *testing.T) {
	h := &recordingHost{result: Result{Success: true}}
	sess := NewSession(h, nil)

	require.NoError(t, sess.ApplyBinding(context.Background(), "1:1", "fill", "V:1"))
	first := h.lastParams["requestId"]
	require.NoError(t, sess.ApplyBinding(context.Background(), "1:1", "stroke", "V:2"))

	assert.NotEqual(t, first, h.lastParams["requestId"])
}

func TestApplyBinding_Rejected(t *testing.T) {
	h := &recordingHost{result: Result{Success: false, Error: "node is locked"}}
	sess := NewSession(h, nil)

	err := sess.ApplyBinding(context.Background(), "1:1", "fill", "V:primary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node is locked")
}

func TestApplyBinding_TransportError(t *testing.T) {
	h := &recordingHost{err: errors.New("connection reset")}
	sess := NewSession(h, nil)

	err := sess.ApplyBinding(context.Background(), "1:1", "fill", "V:primary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `host command "apply_binding"`)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestReadNode(t *testing.T) {
	payload := json.RawMessage(`{"id": "1:1", "fills": ["#0650D0"]}`)
	h := &recordingHost{result: Result{Success: true, Payload: payload}}
	sess := NewSession(h, nil)

	data, err := sess.ReadNode(context.Background(), "1:1")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(data))
	assert.Equal(t, "read_node", h.lastName)
	assert.Equal(t, "1:1", h.lastParams["nodeId"])
}

func TestReadNode_Rejected(t *testing.T) {
	h := &recordingHost{result: Result{Success: false, Error: "unknown node"}}
	sess := NewSession(h, nil)

	_, err := sess.ReadNode(context.Background(), "9:9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node")
}
