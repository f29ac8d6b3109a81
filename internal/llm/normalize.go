package llm

import (
	"fmt"
	"strings"
)

// Text flattens a model result into a plain string. Results arrive in one of
// several shapes, checked in this order:
//
//  1. a list of results: the first element's "text" field if it is a map,
//     otherwise the first element itself, flattened;
//  2. a message object: its content;
//  3. a plain string.
//
// Anything else is coerced with fmt. The result is trimmed.
func Text(v any) string {
	return strings.TrimSpace(text(v, true))
}

func text(v any, allowList bool) string {
	switch r := v.(type) {
	case nil:
		return ""
	case string:
		return r
	case *CompletionResponse:
		if r == nil {
			return ""
		}
		return r.Content
	case CompletionResponse:
		return r.Content
	case Message:
		return r.Content
	case *Message:
		if r == nil {
			return ""
		}
		return r.Content
	case map[string]any:
		// List elements carry their text under "text"; a bare mapping is a
		// message object with "content".
		if !allowList {
			s, _ := r["text"].(string)
			return s
		}
		if s, ok := r["content"].(string); ok {
			return s
		}
		return fmt.Sprint(r)
	case fmt.Stringer:
		return r.String()
	}

	if allowList {
		if first, ok := firstElement(v); ok {
			return text(first, false)
		}
	}
	return fmt.Sprint(v)
}

func firstElement(v any) (any, bool) {
	switch l := v.(type) {
	case []any:
		if len(l) > 0 {
			return l[0], true
		}
		return nil, true
	case []map[string]any:
		if len(l) > 0 {
			return l[0], true
		}
		return nil, true
	case []Message:
		if len(l) > 0 {
			return l[0], true
		}
		return nil, true
	case []*CompletionResponse:
		if len(l) > 0 {
			return l[0], true
		}
		return nil, true
	case []string:
		if len(l) > 0 {
			return l[0], true
		}
		return nil, true
	}
	return nil, false
}
