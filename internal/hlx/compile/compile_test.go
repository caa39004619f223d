package compile

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianc/hlx/internal/hlx/gomponents"
	"github.com/kilianc/hlx/internal/hlx/logging"
	hlxparser "github.com/kilianc/hlx/internal/hlx/parser"
)

func compile(t *testing.T, src string) (string, error) {
	t.Helper()
	out, err := CompileFile("view.hlx", []byte(src), Options{Logger: logging.Discard()})
	return string(out), err
}

func TestCompileFile(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, out string)
	}{
		{
			name: "literal lowered and imports added",
			src: `package views

func Hello(name string) g.Node {
	return <p class="greeting">Hello, @name!</p>
}
`,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, `return h.P(h.Class("greeting"), g.Raw("Hello, "), hlx.Insert(name), g.Raw("!"))`)
				assert.Contains(t, out, `g "maragu.dev/gomponents"`)
				assert.Contains(t, out, `h "maragu.dev/gomponents/html"`)
				assert.Contains(t, out, `hlx "github.com/kilianc/hlx/pkg/hlx/rt"`)
			},
		},
		{
			name: "only used packages are imported",
			src:  "package views\n\nvar x = <my-el/>\n",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, `var x = g.El("my-el")`)
				assert.NotContains(t, out, HTMLPath)
				assert.NotContains(t, out, RuntimePath)
			},
		},
		{
			name: "no literals",
			src:  "package views\n\nfunc  A( ) {}\n",
			check: func(t *testing.T, out string) {
				assert.Equal(t, Header+"\n\npackage views\n\nfunc A() {}\n", out)
			},
		},
		{
			name: "existing import is reused",
			src: `package views

import g "maragu.dev/gomponents"

var x = <!-- hi -->
`,
			check: func(t *testing.T, out string) {
				assert.Equal(t, 1, strings.Count(out, GomponentsPath))
				assert.Contains(t, out, `var x = g.Raw("<!-- hi -->")`)
			},
		},
		{
			name: "markup in strings and comments is left alone",
			src:  "package views\n\n// <b>\nvar s = \"<b>\"\n",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "// <b>\nvar s = \"<b>\"")
				assert.NotContains(t, out, "import")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := compile(t, tt.src)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(out, Header+"\n"), "missing header:\n%s", out)

			_, err = parser.ParseFile(token.NewFileSet(), "out.go", out, 0)
			require.NoError(t, err, "output does not parse:\n%s", out)

			tt.check(t, out)
		})
	}
}

func TestCompileFile_Errors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := compile(t, "package views\n\nvar x = <div>\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, hlxparser.ErrMissingCloseTag)
		assert.Contains(t, err.Error(), "view.hlx: ")

		var se *hlxparser.SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 3, se.Line)
		assert.Equal(t, 9, se.Column)
	})

	t.Run("lowering error has position", func(t *testing.T) {
		_, err := compile(t, "package views\n\nvar x = <div></span>\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, gomponents.ErrMismatchedCloseTag)
		assert.Contains(t, err.Error(), "view.hlx:3:9: ")
	})

	t.Run("invalid generated code", func(t *testing.T) {
		_, err := compile(t, "package views\n\nvar = <p/>\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generated code")
	})

	t.Run("generated code error after multi-line literal", func(t *testing.T) {
		_, err := compile(t, "package views\n\nvar x = <p>\n\n</p>\nvar = 1\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "view.hlx:6:5: ")
	})

	t.Run("generated code error on the literal's last line", func(t *testing.T) {
		_, err := compile(t, "package views\n\nvar x = <p>\n</p> var\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "view.hlx:4: ")
	})
}

func TestSourcePos(t *testing.T) {
	// One literal spliced onto line 1 that spanned lines 1-3 of the source.
	points := []splicePoint{{
		genLine: 1, genCol: 9,
		genEndLine: 1, genEndCol: 20,
		srcLine: 1, srcEndLine: 3,
	}}
	pos := func(line, col int) token.Position {
		return token.Position{Filename: "view.hlx", Line: line, Column: col}
	}

	tests := []struct {
		name string
		in   token.Position
		want token.Position
	}{
		{"before the literal", pos(1, 5), pos(1, 5)},
		{"inside the expression", pos(1, 12), pos(1, 0)},
		{"after the expression on its line", pos(1, 23), pos(3, 0)},
		{"following line", pos(2, 1), pos(4, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourcePos(points, tt.in))
		})
	}
}
