package gomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianc/hlx/internal/hlx/ast"
	"github.com/kilianc/hlx/internal/hlx/parser"
	"github.com/kilianc/hlx/internal/hlx/token"
)

func firstLiteral(t *testing.T, src string) *ast.Literal {
	t.Helper()
	root, err := parser.Parse(token.Split(src))
	require.NoError(t, err)
	for _, seg := range root.Segments {
		if lit, ok := seg.(*ast.Literal); ok {
			return lit
		}
	}
	t.Fatalf("no literal in %q", src)
	return nil
}

func TestLowerer_Source(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "known tag and attrs",
			src:  `<div class="a" id="b">hi</div>`,
			want: `h.Div(h.Class("a"), h.ID("b"), g.Raw("hi"))`,
		},
		{
			name: "custom tag",
			src:  `<my-widget data-x="1" hidden/>`,
			want: `g.El("my-widget", g.Attr("data-x", "1"), g.Attr("hidden"))`,
		},
		{
			name: "entities in attribute values are decoded",
			src:  `<a href="/?a=1&amp;b=2">x</a>`,
			want: `h.A(h.Href("/?a=1&b=2"), g.Raw("x"))`,
		},
		{
			name: "bool attr and property",
			src:  `<input disabled value=v.Name/>`,
			want: `h.Input(h.Disabled(), hlx.Prop("value", v.Name))`,
		},
		{
			name: "comment and insert",
			src:  `<p><!-- c -->@name</p>`,
			want: `h.P(g.Raw("<!-- c -->"), hlx.Insert(name))`,
		},
		{
			name: "nested literal in embedded code",
			src:  `<ul>@items(<li>x</li>)</ul>`,
			want: `h.Ul(hlx.Insert(items(h.Li(g.Raw("x")))))`,
		},
		{
			name: "directives",
			src:  `<button @on:click:once = save @track("b")>go</button>`,
			want: `h.Button(on(save, "click", "once"), track("b"), g.Raw("go"))`,
		},
		{
			name: "call directive with modifiers",
			src:  `<form @bind:strict(model)></form>`,
			want: `h.Form(bind(model, "strict"))`,
		},
		{
			name: "siblings become a group",
			src:  `x := <b>x</b> <i/>`,
			want: `g.Group{g.El("b", g.Raw("x")), g.Raw(" "), g.El("i")}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Source(firstLiteral(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLowerer_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"mismatched close tag", `<div></span>`, ErrMismatchedCloseTag},
		{"bad property expression", `<p x=f(,)/>`, ErrInvalidExpression},
		{"bad insert expression", `<p>@a[]</p>`, ErrInvalidExpression},
		{"bad directive name", `<p @$x = y/>`, ErrInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Source(firstLiteral(t, tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLowerer_Uses(t *testing.T) {
	l := New()
	_, err := l.Source(firstLiteral(t, `<p>hi</p>`))
	require.NoError(t, err)

	assert.True(t, l.Uses(PkgHTML))
	assert.True(t, l.Uses(PkgGomponents))
	assert.False(t, l.Uses(PkgRuntime))

	_, err = l.Source(firstLiteral(t, `<p>@x</p>`))
	require.NoError(t, err)
	assert.True(t, l.Uses(PkgRuntime))
}

func TestParseStartTag(t *testing.T) {
	tag, attrs, err := parseStartTag("<DIV\n  Class='a b'\n  checked>")
	require.NoError(t, err)
	assert.Equal(t, "div", tag)
	require.Len(t, attrs, 2)
	assert.Equal(t, "class", attrs[0].Key)
	assert.Equal(t, "a b", attrs[0].Val)
	assert.Equal(t, "checked", attrs[1].Key)
	assert.Equal(t, "", attrs[1].Val)

	_, _, err = parseStartTag("not a tag")
	assert.ErrorIs(t, err, ErrInvalidStartTag)
}

func TestCheckCloseTag(t *testing.T) {
	assert.NoError(t, checkCloseTag("div", "</div>"))
	assert.NoError(t, checkCloseTag("div", "</DIV >"))
	assert.ErrorIs(t, checkCloseTag("div", "</p>"), ErrMismatchedCloseTag)
}
