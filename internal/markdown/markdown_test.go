package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	out, err := r.Render("**Strengths**\n\n- Go\n- Docker")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Strengths</strong>")
	assert.Contains(t, out, "<li>Go</li>")
}

func TestRenderOmitsRawHTML(t *testing.T) {
	out, err := New().Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "<script>"), "raw html must not pass through: %s", out)
	assert.False(t, strings.Contains(out, "&lt;script&gt;"), "raw html is omitted, not escaped: %s", out)
	assert.Contains(t, out, "raw HTML omitted")
	assert.Contains(t, out, "hello")
}

func TestRenderCodeBlock(t *testing.T) {
	out, err := New().Render("```go\nfunc main() {}\n```")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
}

func TestRenderEmpty(t *testing.T) {
	out, err := New().Render("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
