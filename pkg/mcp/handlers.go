package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/tokenbridge/pkg/matcher"
	"github.com/gnana997/tokenbridge/pkg/resolver"
)

// jsonResult marshals v as indented JSON into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng := s.snapshot()

	type themeInfo struct {
		ID         string `json:"id,omitempty"`
		Name       string `json:"name"`
		Group      string `json:"group,omitempty"`
		TokenCount int    `json:"token_count"`
		StyleCount int    `json:"style_count"`
	}

	themes := eng.query.Themes()
	out := make([]themeInfo, 0, len(themes))
	for _, th := range themes {
		out = append(out, themeInfo{
			ID:         th.ID,
			Name:       th.Name,
			Group:      th.Group,
			TokenCount: len(th.VariableRefs),
			StyleCount: len(th.StyleRefs),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleListTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng := s.snapshot()
	prefix := req.GetString("prefix", "")

	paths := eng.query.TokenPaths()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if prefix == "" || strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return jsonResult(out)
}

func (s *Server) handleSearchTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	eng := s.snapshot()
	results := eng.query.SearchTokens(query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no tokens found for %q", query)), nil
	}
	return jsonResult(results)
}

func (s *Server) handleResolveToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	eng := s.snapshot()
	variables := eng.query.VariablesForToken(path)
	styles := eng.query.StylesForToken(path)
	if len(variables) == 0 && len(styles) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown token path: %s", path)), nil
	}

	out := map[string]any{
		"token_path": path,
		"variables":  variables,
		"styles":     styles,
	}
	if value, ok := eng.query.ResolveToken(path); ok {
		out["value"] = value
	}
	return jsonResult(out)
}

func (s *Server) handleResolveVariable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	variableID, err := req.RequireString("variable_id")
	if err != nil {
		return mcp.NewToolResultError("variable_id parameter is required"), nil
	}

	eng := s.snapshot()
	refs := eng.query.TokensForVariable(variableID)
	if len(refs) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown variable id: %s", variableID)), nil
	}

	out := map[string]any{
		"variable_id": variableID,
		"tokens":      refs,
	}
	if eng.query.Vars != nil {
		if v, ok := eng.query.Vars.Variables[variableID]; ok {
			out["name"] = v.Name
			out["type"] = v.Type
		}
		if value, ok := eng.query.Vars.ResolveVariable(variableID); ok {
			out["value"] = value
		} else {
			out["unresolved"] = true
		}
	}
	return jsonResult(out)
}

func (s *Server) handleResolvePhrase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("phrase")
	if err != nil {
		return mcp.NewToolResultError("phrase parameter is required"), nil
	}

	eng := s.snapshot()
	res, ok := eng.phraseRes.Resolve(text)
	if !ok {
		// Below-threshold phrases are a reported miss, not an error.
		return mcp.NewToolResultText(fmt.Sprintf("no token matched %q", text)), nil
	}
	return jsonResult(res)
}

func (s *Server) handleMatchNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodeJSON, err := req.RequireString("node")
	if err != nil {
		return mcp.NewToolResultError("node parameter is required"), nil
	}

	var node resolver.NodeValues
	if err := json.Unmarshal([]byte(nodeJSON), &node); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid node JSON: %v", err)), nil
	}

	eng := s.snapshot()
	orch := eng.orchestrator
	if tolerance := req.GetFloat("tolerance", 0); tolerance > 0 && tolerance != matcher.DefaultTolerance {
		// Per-call tolerance gets its own orchestrator over the same
		// immutable catalog.
		q := eng.query
		orch, err = resolver.NewOrchestrator(q.Catalog, q.Index, q.Vars, resolver.WithTolerance(tolerance))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	report := orch.MatchNode(node)
	return jsonResult(report)
}
