package hlx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianc/hlx/pkg/hlx"
)

func TestCompileFile(t *testing.T) {
	out, err := hlx.CompileFile("a.hlx", []byte("package a\n\nvar X = <span>@n</span>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "var X = h.Span(hlx.Insert(n))")
}

func TestParse(t *testing.T) {
	f, err := hlx.Parse([]byte("x := <i/>"))
	require.NoError(t, err)
	assert.Len(t, f.Segments, 2)

	_, err = hlx.Parse([]byte("x := <i>"))
	var se *hlx.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 6, se.Column)
}

func TestTokenize(t *testing.T) {
	src := "a := <b c=\"d\">@e</b> // f\n"
	assert.Equal(t, src, strings.Join(hlx.Tokenize(src), ""))
}
