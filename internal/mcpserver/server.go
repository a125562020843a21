// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the castle dataset for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/castellan/internal/apperr"
	"github.com/starford/castellan/internal/castleservice"
)

// Server wraps the MCP server with Castellan tools.
type Server struct {
	mcp *server.MCPServer
	svc *castleservice.Service
}

// New creates a new MCP server with all Castellan tools registered.
func New(svc *castleservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Castellan",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_castles",
		mcp.WithDescription("Full-text search through castle names, countries, and descriptions."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchCastles)

	s.mcp.AddTool(mcp.NewTool("get_castle",
		mcp.WithDescription("Return the full JSON record for one castle."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Castle id (e.g. neuschwanstein_castle)")),
	), s.getCastle)

	s.mcp.AddTool(mcp.NewTool("list_castles",
		mcp.WithDescription("List catalogued castles, optionally filtered by country."),
		mcp.WithString("country", mcp.Description("Optional exact country filter")),
	), s.listCastles)

	s.mcp.AddTool(mcp.NewTool("get_enhancement_contract",
		mcp.WithDescription("Returns the canonical enhancement dataset contract. "+
			"Call this before authoring enhancement records to ensure correct structure."),
	), s.getEnhancementContract)

	// Resource: enhancement format contract.
	s.mcp.AddResource(
		mcp.NewResource("castellan://enhancement-format", "Enhancement Dataset Contract",
			mcp.WithResourceDescription("Canonical enhancement record format the merge consumes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchCastles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCastle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	castle, err := s.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(castle, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCastles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country := ""
	if c, err := req.RequireString("country"); err == nil {
		country = c
	}
	rows, total, err := s.svc.List(ctx, 200, 0, country, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	payload := map[string]any{"castles": rows, "total": total}
	out, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getEnhancementContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EnhancementFormatContract), nil
}

func (s *Server) readContractResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "castellan://enhancement-format",
			MIMEType: "text/markdown",
			Text:     EnhancementFormatContract,
		},
	}, nil
}
