package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/mark3labs/mcp-go/mcp"
	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

// InvalidJSON is the error marker attached to a match result whose model
// output was not JSON.
const InvalidJSON = "Invalid JSON"

// ParseResumeResult is the payload of parse_resume.
type ParseResumeResult struct {
	ParsedResume string `json:"parsed_resume"`
}

// ParseJDResult is the payload of parse_jd.
type ParseJDResult struct {
	ParsedJD string `json:"parsed_jd"`
}

// MatchResult is the payload of match_resume_to_jd. MatchResume holds the
// model's JSON verbatim, or a JSON string of the raw text when Error is
// set.
type MatchResult struct {
	MatchResume json.RawMessage `json:"match_resume"`
	Error       string          `json:"error,omitempty"`
}

// GapSummaryResult is the payload of summarize_gap.
type GapSummaryResult struct {
	GapSummary string `json:"gap_summary"`
}

// handleParseResume extracts name, education, skills and experience.
func (s *Server) handleParseResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resumeText, err := request.RequireString("resume_text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: resume_text"), nil
	}

	out, err := s.complete(ctx, parseResumePrompt, promptData{ResumeText: resumeText})
	if err != nil {
		return nil, err
	}
	return jsonResult(ParseResumeResult{ParsedResume: out})
}

// handleParseJD extracts title, responsibilities and skills.
func (s *Server) handleParseJD(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jdText, err := request.RequireString("jd_text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: jd_text"), nil
	}

	out, err := s.complete(ctx, parseJDPrompt, promptData{JDText: jdText})
	if err != nil {
		return nil, err
	}
	return jsonResult(ParseJDResult{ParsedJD: out})
}

// handleMatchResumeToJD asks for matched and missing skills as JSON.
func (s *Server) handleMatchResumeToJD(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, errResult := parsedPair(request)
	if errResult != nil {
		return errResult, nil
	}

	raw, err := s.complete(ctx, matchPrompt, data)
	if err != nil {
		return nil, err
	}
	zlog.Info().Str("tool", ToolMatchResumeToJD).Str("raw_output", raw).Msg("raw model output")

	if json.Valid([]byte(raw)) {
		return jsonResult(MatchResult{MatchResume: json.RawMessage(raw)})
	}

	zlog.Error().Str("tool", ToolMatchResumeToJD).Msg("failed to parse JSON output")
	quoted, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return jsonResult(MatchResult{MatchResume: quoted, Error: InvalidJSON})
}

// handleSummarizeGap writes a free-text gap analysis.
func (s *Server) handleSummarizeGap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, errResult := parsedPair(request)
	if errResult != nil {
		return errResult, nil
	}

	out, err := s.complete(ctx, summarizeGapPrompt, data)
	if err != nil {
		return nil, err
	}
	return jsonResult(GapSummaryResult{GapSummary: out})
}

func parsedPair(request mcp.CallToolRequest) (promptData, *mcp.CallToolResult) {
	parsedResume, err := request.RequireString("parsed_resume")
	if err != nil {
		return promptData{}, mcp.NewToolResultError("missing required parameter: parsed_resume")
	}
	parsedJD, err := request.RequireString("parsed_jd")
	if err != nil {
		return promptData{}, mcp.NewToolResultError("missing required parameter: parsed_jd")
	}
	return promptData{ParsedResume: parsedResume, ParsedJD: parsedJD}, nil
}

// complete fills the prompt, sends it as a single user message and returns
// the normalised, trimmed reply.
func (s *Server) complete(ctx context.Context, t *template.Template, data promptData) (string, error) {
	prompt, err := renderPrompt(t, data)
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{llm.UserMessage(prompt)},
		Temperature: s.temperature,
	})
	if err != nil {
		zlog.Error().Err(err).Str("tool", t.Name()).Msg("model call failed")
		return "", fmt.Errorf("%s: %w", t.Name(), err)
	}
	return llm.Text(resp), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
