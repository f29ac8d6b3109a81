// Package matcher drives the résumé/job-description tools in a fixed
// sequence and assembles the report shown to the user.
package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vikrambhat2/AgenticRAG/internal/tools"
)

var (
	// ErrEmptyInput is returned when the résumé or job description is blank.
	ErrEmptyInput = errors.New("please provide both resume and job description content")

	// ErrMalformedToolOutput is returned when a tool payload cannot be
	// decoded.
	ErrMalformedToolOutput = errors.New("malformed tool output")

	// ErrToolFailed is returned when the tool service reports a tool-level
	// error, such as a missing argument.
	ErrToolFailed = errors.New("tool call failed")
)

// DefaultGapSummary is shown when summarize_gap returns no summary field.
const DefaultGapSummary = "No summary returned."

// ToolService is the typed client surface of the four matching tools.
type ToolService interface {
	ParseResume(ctx context.Context, resumeText string) (string, error)
	ParseJD(ctx context.Context, jdText string) (string, error)
	MatchResumeToJD(ctx context.Context, parsedResume, parsedJD string) (Match, error)
	SummarizeGap(ctx context.Context, parsedResume, parsedJD string) (string, error)
}

// MatchResult is the structured comparison the model is asked for.
type MatchResult struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchScore    float64  `json:"match_score"`
}

// Match is what match_resume_to_jd returned. Raw is always set. Payload is
// set when Raw is JSON, and Result when its match_resume field decodes
// into a MatchResult. Error carries the service's error marker, if any.
type Match struct {
	Raw     string          `json:"raw"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Result  *MatchResult    `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodeMatch interprets a match_resume_to_jd payload. It never fails:
// undecodable text is kept as Raw for display.
func decodeMatch(text string) Match {
	m := Match{Raw: text}

	var payload tools.MatchResult
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return m
	}
	m.Payload = json.RawMessage(text)
	m.Error = payload.Error

	var result MatchResult
	if payload.Error == "" && json.Unmarshal(payload.MatchResume, &result) == nil {
		m.Result = &result
	}
	return m
}

// decodeField reads the named string field of a parse_* payload.
func decodeField(tool, text, field string) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedToolOutput, tool, err)
	}
	v, ok := payload[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: no string field %q", ErrMalformedToolOutput, tool, field)
	}
	return v, nil
}

// decodeGap reads gap_summary, defaulting when it is absent.
func decodeGap(text string) (string, error) {
	var payload struct {
		GapSummary *string `json:"gap_summary"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedToolOutput, tools.ToolSummarizeGap, err)
	}
	if payload.GapSummary == nil {
		return DefaultGapSummary, nil
	}
	return *payload.GapSummary, nil
}
