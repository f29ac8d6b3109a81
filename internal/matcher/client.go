package matcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/tools"
)

// ClientName identifies this client to the tool service.
const ClientName = "agenticrag-matcher"

// MCPToolService implements ToolService over an MCP client session.
type MCPToolService struct {
	client *client.Client
}

// Dial connects to the tool service named by serverID. An http(s) URL
// selects the streamable HTTP transport; anything else is a command line
// spawned as a stdio server. An empty serverID runs this executable's
// "tools" command.
func Dial(ctx context.Context, serverID string) (*MCPToolService, error) {
	serverID = strings.TrimSpace(serverID)

	if strings.HasPrefix(serverID, "http://") || strings.HasPrefix(serverID, "https://") {
		c, err := client.NewStreamableHttpClient(serverID)
		if err != nil {
			return nil, fmt.Errorf("create http client for %s: %w", serverID, err)
		}
		if err := c.Start(ctx); err != nil {
			return nil, fmt.Errorf("connect to %s: %w", serverID, err)
		}
		return initialize(ctx, c)
	}

	command, args, err := commandLine(serverID)
	if err != nil {
		return nil, err
	}
	c, err := client.NewStdioMCPClient(command, os.Environ(), args...)
	if err != nil {
		return nil, fmt.Errorf("start tool server %q: %w", command, err)
	}
	// The child logs to stderr; keep the pipe drained.
	if stderr, ok := client.GetStderr(c); ok {
		go func() { _, _ = io.Copy(os.Stderr, stderr) }()
	}
	return initialize(ctx, c)
}

// NewInProcess connects to a server running in this process.
func NewInProcess(ctx context.Context, s *server.MCPServer) (*MCPToolService, error) {
	c, err := client.NewInProcessClient(s)
	if err != nil {
		return nil, fmt.Errorf("create in-process client: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("start in-process client: %w", err)
	}
	return initialize(ctx, c)
}

func commandLine(serverID string) (string, []string, error) {
	if serverID == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", nil, fmt.Errorf("locate executable: %w", err)
		}
		return exe, []string{"tools"}, nil
	}
	fields := strings.Fields(serverID)
	return fields[0], fields[1:], nil
}

func initialize(ctx context.Context, c *client.Client) (*MCPToolService, error) {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    ClientName,
		Version: tools.Version,
	}

	res, err := c.Initialize(ctx, req)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize tool session: %w", err)
	}
	zlog.Debug().Str("server", res.ServerInfo.Name).Str("version", res.ServerInfo.Version).Msg("tool session ready")
	return &MCPToolService{client: c}, nil
}

// Close ends the session and stops a spawned server.
func (s *MCPToolService) Close() error {
	return s.client.Close()
}

func (s *MCPToolService) ParseResume(ctx context.Context, resumeText string) (string, error) {
	text, err := s.call(ctx, tools.ToolParseResume, map[string]any{"resume_text": resumeText})
	if err != nil {
		return "", err
	}
	return decodeField(tools.ToolParseResume, text, "parsed_resume")
}

func (s *MCPToolService) ParseJD(ctx context.Context, jdText string) (string, error) {
	text, err := s.call(ctx, tools.ToolParseJD, map[string]any{"jd_text": jdText})
	if err != nil {
		return "", err
	}
	return decodeField(tools.ToolParseJD, text, "parsed_jd")
}

func (s *MCPToolService) MatchResumeToJD(ctx context.Context, parsedResume, parsedJD string) (Match, error) {
	text, err := s.call(ctx, tools.ToolMatchResumeToJD, map[string]any{
		"parsed_resume": parsedResume,
		"parsed_jd":     parsedJD,
	})
	if err != nil {
		return Match{}, err
	}
	return decodeMatch(text), nil
}

func (s *MCPToolService) SummarizeGap(ctx context.Context, parsedResume, parsedJD string) (string, error) {
	text, err := s.call(ctx, tools.ToolSummarizeGap, map[string]any{
		"parsed_resume": parsedResume,
		"parsed_jd":     parsedJD,
	})
	if err != nil {
		return "", err
	}
	return decodeGap(text)
}

// call invokes one tool and returns the text of its first content part.
func (s *MCPToolService) call(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}

	text := firstText(res.Content)
	if res.IsError {
		return "", fmt.Errorf("%w: %s: %s", ErrToolFailed, name, text)
	}
	return text, nil
}

func firstText(content []mcp.Content) string {
	if len(content) == 0 {
		return ""
	}
	switch c := content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		return ""
	}
}
