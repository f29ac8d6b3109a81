package tools

import (
	"strings"
	"text/template"
)

var parseResumePrompt = template.Must(template.New(ToolParseResume).Parse(`
You are a resume parser. Extract the following fields from the text:
- Name
- Education
- Skills
- Work experience (roles, companies, duration)

Resume:
{{.ResumeText}}
`))

var parseJDPrompt = template.Must(template.New(ToolParseJD).Parse(`
You are a JD parser. Extract:
- Job title
- Responsibilities
- Required skills
- Preferred skills

Job Description:
{{.JDText}}
`))

var matchPrompt = template.Must(template.New(ToolMatchResumeToJD).Parse(`
Compare the following resume info to the job description info.

Resume:
{{.ParsedResume}}

Job Description:
{{.ParsedJD}}

List skills or experiences that MATCH and those that are MISSING(present in Job Description but not in Resume ).
Respond as JSON: {"matched_skills": [], "missing_skills": [], "match_score": 0.0}
`))

var summarizeGapPrompt = template.Must(template.New(ToolSummarizeGap).Parse(`
Generate a professional gap analysis summary comparing the resume and JD.

Resume:
{{.ParsedResume}}

JD:
{{.ParsedJD}}

Highlight strengths, gaps, and whether the candidate is a good fit.
`))

type promptData struct {
	ResumeText   string
	JDText       string
	ParsedResume string
	ParsedJD     string
}

func renderPrompt(t *template.Template, data promptData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
