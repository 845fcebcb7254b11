package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenbridge/pkg/host"
)

// fakeHost records commands and rejects configured node/property pairs.
type fakeHost struct {
	commands []fakeCommand
	reject   map[string]string // "nodeId/property" -> rejection reason
	err      error
}

type fakeCommand struct {
	name   string
	params map[string]any
}

func (f *fakeHost) SendCommand(_ context.Context, name string, params map[string]any) (host.Result, error) {
	f.commands = append(f.commands, fakeCommand{name: name, params: params})
	if f.err != nil {
		return host.Result{}, f.err
	}
	key := fmt.Sprintf("%v/%v", params["nodeId"], params["property"])
	if reason, ok := f.reject[key]; ok {
		return host.Result{Success: false, Error: reason}, nil
	}
	return host.Result{Success: true}, nil
}

func TestApplyNode_AppliesMatches(t *testing.T) {
	o := fixtureOrchestrator(t)
	fh := &fakeHost{}
	sess := host.NewSession(fh, nil)

	radius := 3.0
	_, results := o.ApplyNode(context.Background(), sess, NodeValues{
		ID:           "1:1",
		Fills:        []any{"#0650D0"},
		CornerRadius: &radius,
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Applied)
	assert.Equal(t, PropertyFill, results[0].Property)
	assert.Equal(t, "v-primary", results[0].VariableID)
	assert.True(t, results[1].Applied)
	assert.Equal(t, PropertyCornerRadius, results[1].Property)
	assert.Equal(t, "v-radius-small", results[1].VariableID)

	require.Len(t, fh.commands, 2)
	cmd := fh.commands[0]
	assert.Equal(t, "apply_binding", cmd.name)
	assert.Equal(t, "1:1", cmd.params["nodeId"])
	assert.Equal(t, "fill", cmd.params["property"])
	assert.Equal(t, "v-primary", cmd.params["variableId"])
	assert.Equal(t, sess.ID(), cmd.params["sessionId"])
	assert.NotEmpty(t, cmd.params["requestId"])
}

func TestApplyNode_PartialFailure(t *testing.T) {
	// One rejected property does not affect sibling properties, and
	// already-applied bindings are not rolled back.
	o := fixtureOrchestrator(t)
	fh := &fakeHost{reject: map[string]string{"1:1/stroke": "node is locked"}}
	sess := host.NewSession(fh, nil)

	_, results := o.ApplyNode(context.Background(), sess, NodeValues{
		ID:      "1:1",
		Fills:   []any{"#0650D0"},
		Strokes: []any{"#DC1E1E"},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.Equal(t, PropertyStroke, results[1].Property)
	assert.Contains(t, results[1].Reason, "node is locked")

	// Both commands were still issued.
	assert.Len(t, fh.commands, 2)
}

func TestApplyNode_HostError(t *testing.T) {
	o := fixtureOrchestrator(t)
	fh := &fakeHost{err: fmt.Errorf("connection reset")}
	sess := host.NewSession(fh, nil)

	_, results := o.ApplyNode(context.Background(), sess, NodeValues{
		ID:    "1:1",
		Fills: []any{"#0650D0"},
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Applied)
	assert.Contains(t, results[0].Reason, "connection reset")
}

func TestApplyNode_MissReportedNotApplied(t *testing.T) {
	o := fixtureOrchestrator(t)
	fh := &fakeHost{}
	sess := host.NewSession(fh, nil)

	_, results := o.ApplyNode(context.Background(), sess, NodeValues{
		ID:    "1:1",
		Fills: []any{[]int{1, 2}}, // unparseable observed value
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Applied)
	assert.Equal(t, "no matching token found", results[0].Reason)
	assert.Empty(t, fh.commands)
}

func TestApplyNode_RecursesChildren(t *testing.T) {
	o := fixtureOrchestrator(t)
	fh := &fakeHost{}
	sess := host.NewSession(fh, nil)

	_, results := o.ApplyNode(context.Background(), sess, NodeValues{
		ID:   "1:0",
		Name: "Card",
		Children: []NodeValues{
			{ID: "1:1", Name: "Secondary Button", Fills: []any{"#FFFFFF"}},
		},
	})

	var nodeIDs []string
	for _, r := range results {
		nodeIDs = append(nodeIDs, r.NodeID)
	}
	assert.Contains(t, nodeIDs, "1:1")
}
