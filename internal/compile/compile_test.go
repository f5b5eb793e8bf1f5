package compile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reportkit/internal/compile"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	doc := compile.Wrap("\\section*{Results}\n")

	require.True(t, strings.HasPrefix(doc, "\\documentclass"))
	assert.Contains(t, doc, "\\usepackage{booktabs}")
	assert.Contains(t, doc, "\\begin{document}\n\\section*{Results}\n\\end{document}\n")
}

func TestWrapEmptyFragment(t *testing.T) {
	t.Parallel()

	doc := compile.Wrap("")

	assert.Contains(t, doc, "\\begin{document}\n\\end{document}\n")
}
