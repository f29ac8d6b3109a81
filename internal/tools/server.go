// Package tools exposes the résumé/job-description matching tools over the
// Model Context Protocol.
package tools

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

// ServerName identifies the tool service to clients.
const ServerName = "Resume JD Matcher"

// HTTPEndpoint is the path of the streamable HTTP transport.
const HTTPEndpoint = "/mcp"

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the four matching tools. The
// tools are stateless; each call is one model invocation.
type Server struct {
	provider    llm.Provider
	temperature float64
	mcp         *server.MCPServer
}

// NewServer creates a new MCP server backed by provider.
func NewServer(provider llm.Provider, temperature float64) *Server {
	s := &Server{
		provider:    provider,
		temperature: temperature,
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(parseResumeTool, s.handleParseResume)
	s.mcp.AddTool(parseJDTool, s.handleParseJD)
	s.mcp.AddTool(matchResumeToJDTool, s.handleMatchResumeToJD)
	s.mcp.AddTool(summarizeGapTool, s.handleSummarizeGap)
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// HTTPHandler returns the streamable HTTP transport for mounting on a
// router at HTTPEndpoint.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(HTTPEndpoint))
}
