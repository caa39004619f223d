package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "plain code",
			src:  "x := a + b",
			want: []string{"x", " ", ":", "=", " ", "a", " ", "+", " ", "b"},
		},
		{
			name: "element",
			src:  `<div class="a">hi</div>`,
			want: []string{"<", "div", " ", "class", "=", `"`, "a", `"`, ">", "hi", "</", "div", ">"},
		},
		{
			name: "self closing",
			src:  "<br/>",
			want: []string{"<", "br", "/>"},
		},
		{
			name: "comparison stays in text",
			src:  "a < b",
			want: []string{"a", " ", "<", " ", "b"},
		},
		{
			name: "html comment",
			src:  "<!-- x -->",
			want: []string{"<!--", " ", "x", " ", "-->"},
		},
		{
			name: "insert",
			src:  "@user.Name",
			want: []string{"@", "user.Name"},
		},
		{
			name: "line comment",
			src:  "x // <b>\ny",
			want: []string{"x", " ", "//", " ", "<", "b", ">", "\n", "y"},
		},
		{
			name: "block comment",
			src:  "/* a */",
			want: []string{"/*", " ", "a", " ", "*/"},
		},
		{
			name: "brackets",
			src:  "f(a[0]{})",
			want: []string{"f", "(", "a", "[", "0", "]", "{", "}", ")"},
		},
		{
			name: "escaped quote",
			src:  `"a\"b"`,
			want: []string{`"`, `a\`, `"`, "b", `"`},
		},
		{
			name: "newlines and whitespace runs",
			src:  "a \t\n  b",
			want: []string{"a", " \t", "\n", "  ", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.src))
		})
	}
}

func TestSplit_LessThanNotFollowedByLetter(t *testing.T) {
	assert.Equal(t, []string{"a<", "=", "b"}, Split("a<=b"))
	assert.Equal(t, []string{"v", " ", ":", "=", " ", "<-ch"}, Split("v := <-ch"))
	assert.Equal(t, []string{"i", "<", "n"}, Split("i<n"))
}

func TestSplit_Shifts(t *testing.T) {
	assert.Equal(t, []string{"return", " ", "1<", "<", "s", " ", "+", " ", "1"}, Split("return 1<<s + 1"))
	assert.Equal(t, []string{"x", "[", "i<<2", "]"}, Split("x[i<<2]"))
}

func TestSplit_VerticalTabIsText(t *testing.T) {
	assert.Equal(t, []string{"a\vb"}, Split("a\vb"))
	assert.Equal(t, []string{" ", "\v", "\t"}, Split(" \v\t"))
}

func TestSplit_Lossless(t *testing.T) {
	srcs := []string{
		"package main\n\nfunc View() g.Node {\n\treturn <p>@x</p>\n}\n",
		`<a href="http://example.com/?q=1">@label</a>`,
		"x := `raw <b>` + \"s\\\\\" // done",
		"<!-- c -->\r\n<ul>\n  <li @on:click = h>1</li>\n</ul>",
	}
	for _, src := range srcs {
		toks := Split(src)
		assert.Equal(t, src, strings.Join(toks, ""))
		for _, tok := range toks {
			assert.NotEmpty(t, tok)
		}
	}
}
