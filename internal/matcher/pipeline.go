package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/tools"
)

// Report is the assembled outcome of one match run.
type Report struct {
	ParsedResume string `json:"parsed_resume"`
	ParsedJD     string `json:"parsed_jd"`
	Match        Match  `json:"match"`
	GapSummary   string `json:"gap_summary,omitempty"`
	// GapError is set instead of GapSummary when the summary payload
	// could not be decoded.
	GapError string `json:"gap_error,omitempty"`
}

// StepFunc is told the name of each tool just before it is called.
type StepFunc func(tool string)

// Pipeline calls the four tools one after another.
type Pipeline struct {
	Tools  ToolService
	OnStep StepFunc
}

// Run validates the inputs and then calls parse_resume, parse_jd,
// match_resume_to_jd and summarize_gap in that order, each awaited before
// the next.
func (p *Pipeline) Run(ctx context.Context, resumeText, jdText string) (*Report, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return nil, ErrEmptyInput
	}

	p.step(tools.ToolParseResume)
	parsedResume, err := p.Tools.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	p.step(tools.ToolParseJD)
	parsedJD, err := p.Tools.ParseJD(ctx, jdText)
	if err != nil {
		return nil, err
	}

	p.step(tools.ToolMatchResumeToJD)
	match, err := p.Tools.MatchResumeToJD(ctx, parsedResume, parsedJD)
	if err != nil {
		return nil, err
	}

	p.step(tools.ToolSummarizeGap)
	report := &Report{
		ParsedResume: parsedResume,
		ParsedJD:     parsedJD,
		Match:        match,
	}
	gap, err := p.Tools.SummarizeGap(ctx, parsedResume, parsedJD)
	switch {
	case errors.Is(err, ErrMalformedToolOutput):
		report.GapError = fmt.Sprintf("Error parsing gap summary: %v", err)
	case err != nil:
		return nil, err
	default:
		report.GapSummary = gap
	}

	return report, nil
}

func (p *Pipeline) step(tool string) {
	zlog.Debug().Str("tool", tool).Msg("calling tool")
	if p.OnStep != nil {
		p.OnStep(tool)
	}
}
