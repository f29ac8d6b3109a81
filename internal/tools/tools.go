package tools

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolParseResume     = "parse_resume"
	ToolParseJD         = "parse_jd"
	ToolMatchResumeToJD = "match_resume_to_jd"
	ToolSummarizeGap    = "summarize_gap"
)

// parseResumeTool defines the parse_resume MCP tool.
var parseResumeTool = mcp.NewTool(ToolParseResume,
	mcp.WithDescription("Extract structured info from resume"),
	mcp.WithString("resume_text",
		mcp.Required(),
		mcp.Description("Plain text of the resume"),
	),
)

// parseJDTool defines the parse_jd MCP tool.
var parseJDTool = mcp.NewTool(ToolParseJD,
	mcp.WithDescription("Extract structured info from Job Description"),
	mcp.WithString("jd_text",
		mcp.Required(),
		mcp.Description("Plain text of the job description"),
	),
)

// matchResumeToJDTool defines the match_resume_to_jd MCP tool.
var matchResumeToJDTool = mcp.NewTool(ToolMatchResumeToJD,
	mcp.WithDescription("Compare parsed resume and JD, list matches and mismatches"),
	mcp.WithString("parsed_resume",
		mcp.Required(),
		mcp.Description("Output of parse_resume"),
	),
	mcp.WithString("parsed_jd",
		mcp.Required(),
		mcp.Description("Output of parse_jd"),
	),
)

// summarizeGapTool defines the summarize_gap MCP tool.
var summarizeGapTool = mcp.NewTool(ToolSummarizeGap,
	mcp.WithDescription("Generate a business-style gap analysis summary"),
	mcp.WithString("parsed_resume",
		mcp.Required(),
		mcp.Description("Output of parse_resume"),
	),
	mcp.WithString("parsed_jd",
		mcp.Required(),
		mcp.Description("Output of parse_jd"),
	),
)
