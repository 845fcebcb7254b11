// Package mcp exposes the token resolution engine as MCP tools over stdio.
package mcp

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/tokenbridge/pkg/mcplog"
	"github.com/gnana997/tokenbridge/pkg/phrase"
	"github.com/gnana997/tokenbridge/pkg/resolver"
	"github.com/gnana997/tokenbridge/pkg/tokens"
)

const serverVersion = "0.1.0-dev"

// engine bundles the per-catalog services. Swapped atomically as a unit
// when the watched catalog file changes. catalogName and generation
// identify the snapshot in tool-call log entries so a log line can be
// tied to the catalog it ran against.
type engine struct {
	query        *tokens.Query
	phraseRes    *phrase.Resolver
	orchestrator *resolver.Orchestrator
	catalogName  string
	generation   uint64
}

// Server implements the MCP server for tokenbridge, exposing catalog
// queries, phrase resolution, and node matching.
type Server struct {
	mcpServer *server.MCPServer
	logger    *mcplog.Logger // may be nil: logging disabled

	mu  sync.RWMutex
	eng engine
}

// NewServer creates a new MCP server over the given catalog session.
// logger may be nil to disable tool-call logging.
func NewServer(cat *tokens.Catalog, idx *tokens.CatalogIndex, vars *tokens.VariableSet, logger *mcplog.Logger) (*Server, error) {
	s := &Server{logger: logger}
	if err := s.SetCatalog(cat, idx, vars); err != nil {
		return nil, err
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer(
		"tokenbridge",
		serverVersion,
		opts...,
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listThemesTool(), Handler: s.handleListThemes},
		server.ServerTool{Tool: listTokensTool(), Handler: s.handleListTokens},
		server.ServerTool{Tool: searchTokensTool(), Handler: s.handleSearchTokens},
		server.ServerTool{Tool: resolveTokenTool(), Handler: s.handleResolveToken},
		server.ServerTool{Tool: resolveVariableTool(), Handler: s.handleResolveVariable},
		server.ServerTool{Tool: resolvePhraseTool(), Handler: s.handleResolvePhrase},
		server.ServerTool{Tool: matchNodeTool(), Handler: s.handleMatchNode},
	)

	return s, nil
}

// SetCatalog swaps in a freshly loaded catalog. Used by the watch path;
// in-flight tool calls finish against the engine they snapshotted.
func (s *Server) SetCatalog(cat *tokens.Catalog, idx *tokens.CatalogIndex, vars *tokens.VariableSet) error {
	query := tokens.NewQuery(cat, idx, vars)
	phraseRes, err := phrase.NewResolver(query)
	if err != nil {
		return fmt.Errorf("failed to build phrase resolver: %w", err)
	}
	orch, err := resolver.NewOrchestrator(cat, idx, vars)
	if err != nil {
		return fmt.Errorf("failed to build orchestrator: %w", err)
	}

	s.mu.Lock()
	s.eng = engine{
		query:        query,
		phraseRes:    phraseRes,
		orchestrator: orch,
		catalogName:  cat.Name,
		generation:   s.eng.generation + 1,
	}
	s.mu.Unlock()
	return nil
}

// snapshot returns the current engine for one tool call.
func (s *Server) snapshot() engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
