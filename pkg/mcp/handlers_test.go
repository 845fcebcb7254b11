package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenbridge/pkg/tokens"
)

// --- helpers ---

func testServer(t *testing.T) *Server {
	t.Helper()

	cat := &tokens.Catalog{
		Name:    "test",
		Version: "1.0",
		Themes: []tokens.Theme{
			{
				ID:    "T:light",
				Name:  "Light",
				Group: "Color Mode",
				VariableRefs: map[string]string{
					"color.surface.action.primary.default": "V:primary",
					"color.status.danger":                  "V:danger",
					"spacing.md":                           "V:spacing",
				},
				StyleRefs: map[string]string{
					"type.button.md": "S:123",
				},
			},
			{
				ID:    "T:dark",
				Name:  "Dark",
				Group: "Color Mode",
				VariableRefs: map[string]string{
					"color.surface.action.primary.default": "V:primary-dark",
				},
			},
		},
	}
	idx := cat.BuildIndex()

	vars := tokens.NewVariableSet([]tokens.Variable{
		{
			ID: "V:primary", Name: "color/action", CollectionID: "col-theme", Type: tokens.VariableColor,
			Modes:  []string{"M:1"},
			Values: map[string]tokens.VariableValue{"M:1": tokens.Literal("#0650D0")},
		},
		{
			ID: "V:primary-dark", Name: "color/action", CollectionID: "col-theme", Type: tokens.VariableColor,
			Modes:  []string{"M:1"},
			Values: map[string]tokens.VariableValue{"M:1": tokens.Literal("#3B82F6")},
		},
		{
			ID: "V:danger", Name: "color/danger", CollectionID: "col-theme", Type: tokens.VariableColor,
			Modes:  []string{"M:1"},
			Values: map[string]tokens.VariableValue{"M:1": tokens.Alias("V:deleted")},
		},
		{
			ID: "V:spacing", Name: "spacing/md", CollectionID: "col-theme", Type: tokens.VariableFloat,
			Modes:  []string{"M:1"},
			Values: map[string]tokens.VariableValue{"M:1": tokens.Literal(16.0)},
		},
	}, []tokens.Collection{
		{ID: "col-theme", Name: "Modes"},
	})

	s, err := NewServer(cat, idx, vars, nil)
	require.NoError(t, err)
	return s
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "list_themes":
		handler = s.handleListThemes
	case "list_tokens":
		handler = s.handleListTokens
	case "search_tokens":
		handler = s.handleSearchTokens
	case "resolve_token":
		handler = s.handleResolveToken
	case "resolve_variable":
		handler = s.handleResolveVariable
	case "resolve_phrase":
		handler = s.handleResolvePhrase
	case "match_node":
		handler = s.handleMatchNode
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- list_themes ---

func TestHandleListThemes(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("list_themes", nil))
	assert.False(t, result.IsError)

	var themes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &themes))
	require.Len(t, themes, 2)
	assert.Equal(t, "Light", themes[0]["name"])
	assert.Equal(t, float64(3), themes[0]["token_count"])
	assert.Equal(t, float64(1), themes[0]["style_count"])
}

// --- list_tokens ---

func TestHandleListTokens_NoFilter(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("list_tokens", nil))
	assert.False(t, result.IsError)

	var paths []string
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &paths))
	assert.Len(t, paths, 3)
}

func TestHandleListTokens_ByPrefix(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("list_tokens", map[string]any{"prefix": "color.status"}))

	var paths []string
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &paths))
	require.Len(t, paths, 1)
	assert.Equal(t, "color.status.danger", paths[0])
}

// --- search_tokens ---

func TestHandleSearchTokens(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("search_tokens", map[string]any{"query": "primary"}))
	assert.False(t, result.IsError)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "color.surface.action.primary.default", results[0]["token_path"])
}

func TestHandleSearchTokens_NoMatch(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("search_tokens", map[string]any{"query": "zzz_nonexistent"}))
	assert.False(t, result.IsError)
	// returns text message, not error
	text := resultJSON(t, result)
	assert.Contains(t, text, "no tokens found")
}

func TestHandleSearchTokens_MissingQuery(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("search_tokens", nil))
	assert.True(t, result.IsError)
}

// --- resolve_token ---

func TestHandleResolveToken(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_token", map[string]any{
		"path": "color.surface.action.primary.default",
	}))
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, "#0650D0", out["value"])
	variables, ok := out["variables"].([]any)
	require.True(t, ok)
	assert.Len(t, variables, 2) // bound in both themes
}

func TestHandleResolveToken_StyleBound(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_token", map[string]any{"path": "type.button.md"}))
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	styles, ok := out["styles"].([]any)
	require.True(t, ok)
	assert.Len(t, styles, 1)
	_, hasValue := out["value"]
	assert.False(t, hasValue)
}

func TestHandleResolveToken_Unknown(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_token", map[string]any{"path": "color.nope"}))
	assert.True(t, result.IsError)
}

// --- resolve_variable ---

func TestHandleResolveVariable(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_variable", map[string]any{"variable_id": "V:spacing"}))
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, "spacing/md", out["name"])
	assert.Equal(t, float64(16), out["value"])
}

func TestHandleResolveVariable_Unresolved(t *testing.T) {
	s := testServer(t)
	// V:danger aliases a deleted variable; the binding is still reported.
	result := callTool(t, s, makeRequest("resolve_variable", map[string]any{"variable_id": "V:danger"}))
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, true, out["unresolved"])
}

func TestHandleResolveVariable_Unknown(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_variable", map[string]any{"variable_id": "V:nope"}))
	assert.True(t, result.IsError)
}

// --- resolve_phrase ---

func TestHandleResolvePhrase(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_phrase", map[string]any{
		"phrase": "primary surface color",
	}))
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, "color.surface.action.primary.default", out["token_path"])
	assert.Equal(t, "fills", out["property"])
}

func TestHandleResolvePhrase_Miss(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("resolve_phrase", map[string]any{"phrase": "nothing relevant"}))
	assert.False(t, result.IsError)
	// returns text message, not error
	assert.Contains(t, resultJSON(t, result), "no token matched")
}

// --- match_node ---

func TestHandleMatchNode(t *testing.T) {
	s := testServer(t)
	node := `{"id": "1:1", "name": "Primary Button", "fills": ["#0650D0"]}`
	result := callTool(t, s, makeRequest("match_node", map[string]any{"node": node}))
	assert.False(t, result.IsError)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &report))
	matches, ok := report["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)

	pm, ok := matches[0].(map[string]any)
	require.True(t, ok)
	match, ok := pm["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "color.surface.action.primary.default", match["token_path"])
	assert.Equal(t, "exact", match["match_type"])
	assert.Equal(t, float64(1), match["confidence"])
}

func TestHandleMatchNode_CustomTolerance(t *testing.T) {
	s := testServer(t)
	node := `{"id": "1:1", "item_spacing": 20}`
	result := callTool(t, s, makeRequest("match_node", map[string]any{
		"node":      node,
		"tolerance": 4,
	}))
	assert.False(t, result.IsError)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &report))
	matches, ok := report["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)

	pm := matches[0].(map[string]any)
	match, ok := pm["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "spacing.md", match["token_path"])
	assert.Equal(t, float64(0.95), match["confidence"]) // distance 4 within tolerance
}

func TestHandleMatchNode_InvalidJSON(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("match_node", map[string]any{"node": "{not json"}))
	assert.True(t, result.IsError)
}

func TestHandleMatchNode_MissingNode(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("match_node", nil))
	assert.True(t, result.IsError)
}

// --- catalog swap ---

func TestSetCatalog_Swap(t *testing.T) {
	s := testServer(t)

	cat := &tokens.Catalog{
		Name: "swapped",
		Themes: []tokens.Theme{{
			ID: "T:1", Name: "Light",
			VariableRefs: map[string]string{"color.new.token": "V:new"},
		}},
	}
	vars := tokens.NewVariableSet(nil, nil)
	require.NoError(t, s.SetCatalog(cat, cat.BuildIndex(), vars))

	result := callTool(t, s, makeRequest("list_tokens", nil))
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &paths))
	assert.Equal(t, []string{"color.new.token"}, paths)
}
