package rag

import (
	"regexp"
	"strings"
)

var thinkPattern = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// SplitReasoning separates a model's <think>...</think> segment from the
// visible answer. reasoning is the trimmed content of the first segment;
// visible has every segment removed and is trimmed. Without markers
// reasoning is empty and visible is raw unchanged.
func SplitReasoning(raw string) (reasoning, visible string) {
	m := thinkPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", raw
	}
	reasoning = strings.TrimSpace(m[1])
	visible = strings.TrimSpace(thinkPattern.ReplaceAllString(raw, ""))
	return reasoning, visible
}
