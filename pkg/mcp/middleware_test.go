package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenbridge/pkg/mcplog"
	"github.com/gnana997/tokenbridge/pkg/tokens"
)

func loggedServer(t *testing.T) (*Server, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "calls.jsonl")
	logger, err := mcplog.NewLogger(logPath)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	cat := &tokens.Catalog{
		Name: "logged",
		Themes: []tokens.Theme{{
			ID: "T:1", Name: "Light",
			VariableRefs: map[string]string{"color.surface.default": "V:1"},
		}},
	}
	vars := tokens.NewVariableSet([]tokens.Variable{{
		ID: "V:1", Name: "color/surface", CollectionID: "col", Type: tokens.VariableColor,
		Modes:  []string{"M:1"},
		Values: map[string]tokens.VariableValue{"M:1": tokens.Literal("#FFFFFF")},
	}}, []tokens.Collection{{ID: "col", Name: "Modes"}})

	s, err := NewServer(cat, cat.BuildIndex(), vars, logger)
	require.NoError(t, err)
	return s, logPath
}

func readLogEntries(t *testing.T, path string) []mcplog.LogEntry {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []mcplog.LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e mcplog.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestLoggingMiddleware_TagsCatalogSnapshot(t *testing.T) {
	s, logPath := loggedServer(t)

	handler := s.loggingMiddleware()(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	_, err := handler(context.Background(), makeRequest("list_tokens", nil))
	require.NoError(t, err)

	swapped := &tokens.Catalog{
		Name: "logged-v2",
		Themes: []tokens.Theme{{
			ID: "T:1", Name: "Light",
			VariableRefs: map[string]string{"color.surface.default": "V:1"},
		}},
	}
	require.NoError(t, s.SetCatalog(swapped, swapped.BuildIndex(), tokens.NewVariableSet(nil, nil)))

	_, err = handler(context.Background(), makeRequest("list_tokens", nil))
	require.NoError(t, err)

	entries := readLogEntries(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, "list_tokens", entries[0].Tool)
	assert.Equal(t, "logged", entries[0].Catalog)
	assert.Equal(t, uint64(1), entries[0].CatalogGen)
	assert.Equal(t, "logged-v2", entries[1].Catalog)
	assert.Equal(t, uint64(2), entries[1].CatalogGen)
	assert.Greater(t, entries[0].ResponseBytes, 0)
}

func TestLoggingMiddleware_RecordsHandlerError(t *testing.T) {
	s, logPath := loggedServer(t)

	handler := s.loggingMiddleware()(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("handler blew up")
	})

	_, err := handler(context.Background(), makeRequest("match_node", map[string]any{"node": "{}"}))
	require.Error(t, err)

	entries := readLogEntries(t, logPath)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Error)
	assert.Equal(t, "handler blew up", *entries[0].Error)
}
