// Package mcp exposes the inventory as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/paularlott/mcp"

	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/storage"
)

// Server wraps the MCP server with inventory storage
type Server struct {
	mcpServer *mcp.Server
	storage   storage.Storage
	tools     map[string]toolFunc
}

// NewServer creates a new MCP server exposing CRUD tools for every entity
func NewServer(store storage.Storage) *Server {
	s := &Server{
		mcpServer: mcp.NewServer("assetcompass", "1.0.0"),
		storage:   store,
		tools:     make(map[string]toolFunc),
	}
	s.registerTools()
	return s
}

// HandleRequest serves MCP over HTTP.
func (s *Server) HandleRequest(w http.ResponseWriter, r *http.Request) {
	log.Debug("MCP request received", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	s.mcpServer.HandleRequest(w, r)
}

// ToolNames returns the registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// call runs a tool by name and renders its result as indented JSON.
func (s *Server) call(ctx context.Context, name string, a args) (string, error) {
	fn, ok := s.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	log.Debug("MCP tool call", "tool", name)

	result, err := fn(ctx, a)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", name, err)
	}
	return string(out), nil
}

// handler adapts a tool to the MCP request type. Only the named parameters
// are read from the request.
func (s *Server) handler(name string, params ...string) func(context.Context, *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return func(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
		a := make(args, len(params))
		for _, p := range params {
			a[p] = req.StringOr(p, "")
		}

		text, err := s.call(ctx, name, a)
		if err != nil {
			return nil, toolError(name, err)
		}

		log.Info("MCP tool completed", "tool", name)
		return mcp.NewToolResponseText(text), nil
	}
}
