// Package gomponents lowers markup literals to Go expressions that build
// maragu.dev/gomponents nodes.
package gomponents

import (
	"bytes"
	"errors"
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/printer"
	gotoken "go/token"
	"strings"

	"golang.org/x/net/html"

	"github.com/kilianc/hlx/internal/hlx/ast"
)

// Package names generated code refers to.
const (
	PkgGomponents = "g"
	PkgHTML       = "h"
	PkgRuntime    = "hlx"
)

var (
	ErrInvalidStartTag    = errors.New("invalid start tag")
	ErrMismatchedCloseTag = errors.New("mismatched close tag")
	ErrInvalidExpression  = errors.New("invalid expression")
)

// Lowerer turns literals into expressions and remembers which of the
// generated packages those expressions use. It is not safe for concurrent
// use.
type Lowerer struct {
	used map[string]bool
}

func New() *Lowerer {
	return &Lowerer{used: map[string]bool{}}
}

// Uses reports whether any lowered expression referenced pkg.
func (l *Lowerer) Uses(pkg string) bool {
	return l.used[pkg]
}

// Source lowers lit and prints the result as a single-line Go expression.
func (l *Lowerer) Source(lit *ast.Literal) (string, error) {
	ex, err := l.Literal(lit)
	if err != nil {
		return "", err
	}
	return printExpr(ex)
}

// Literal lowers a list of sibling nodes to a single expression that
// evaluates to a g.Node.
func (l *Lowerer) Literal(lit *ast.Literal) (goast.Expr, error) {
	if len(lit.Nodes) == 1 {
		return l.lowerNode(lit.Nodes[0])
	}
	var elts []goast.Expr
	for _, n := range lit.Nodes {
		ex, err := l.lowerNode(n)
		if err != nil {
			return nil, err
		}
		elts = append(elts, ex)
	}
	return &goast.CompositeLit{
		Type: l.sel(PkgGomponents, "Group"),
		Elts: elts,
	}, nil
}

func (l *Lowerer) lowerNode(n ast.Node) (goast.Expr, error) {
	switch t := n.(type) {
	case *ast.Text:
		return call(l.sel(PkgGomponents, "Raw"), strLit(t.Text)), nil
	case *ast.Comment:
		return call(l.sel(PkgGomponents, "Raw"), strLit(t.Text)), nil
	case *ast.Insert:
		ex, err := l.Code(t.Code)
		if err != nil {
			return nil, err
		}
		return call(l.sel(PkgRuntime, "Insert"), ex), nil
	case *ast.Element:
		return l.lowerElement(t)
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}
}

// Code parses embedded code as a Go expression. Nested literals are lowered
// and printed in place first.
func (l *Lowerer) Code(code *ast.EmbeddedCode) (goast.Expr, error) {
	src, err := l.codeSource(code)
	if err != nil {
		return nil, err
	}
	ex, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpression, src, err)
	}
	return ex, nil
}

func (l *Lowerer) codeSource(code *ast.EmbeddedCode) (string, error) {
	var sb strings.Builder
	for _, seg := range code.Segments {
		switch s := seg.(type) {
		case *ast.CodeText:
			sb.WriteString(s.Text)
		case *ast.Literal:
			src, err := l.Source(s)
			if err != nil {
				return "", err
			}
			sb.WriteString(src)
		}
	}
	return sb.String(), nil
}

func (l *Lowerer) lowerElement(el *ast.Element) (goast.Expr, error) {
	tag, attrs, err := parseStartTag(el.OpenTag)
	if err != nil {
		return nil, err
	}
	if !el.SelfClosing() {
		if err := checkCloseTag(tag, el.CloseTag); err != nil {
			return nil, err
		}
	}

	var args []goast.Expr

	// attrs first
	for _, a := range attrs {
		args = append(args, l.lowerAttr(a))
	}
	for _, p := range el.Properties {
		ex, err := l.Code(p.Code)
		if err != nil {
			return nil, err
		}
		args = append(args, call(l.sel(PkgRuntime, "Prop"), strLit(p.Name), ex))
	}
	for _, d := range el.Directives {
		ex, err := l.lowerDirective(d)
		if err != nil {
			return nil, err
		}
		args = append(args, ex)
	}
	// then children
	for _, c := range el.Content {
		cx, err := l.lowerNode(c)
		if err != nil {
			return nil, err
		}
		args = append(args, cx)
	}

	if fn := htmlElementFunc(tag); fn != "" {
		return call(l.sel(PkgHTML, fn), args...), nil
	}
	allArgs := append([]goast.Expr{strLit(tag)}, args...)
	return call(l.sel(PkgGomponents, "El"), allArgs...), nil
}

func (l *Lowerer) lowerAttr(a html.Attribute) goast.Expr {
	if a.Val == "" {
		if fn := htmlBoolAttrFunc(a.Key); fn != "" {
			return call(l.sel(PkgHTML, fn))
		}
		return call(l.sel(PkgGomponents, "Attr"), strLit(a.Key))
	}
	if fn := htmlStringAttrFunc(a.Key); fn != "" {
		return call(l.sel(PkgHTML, fn), strLit(a.Val))
	}
	return call(l.sel(PkgGomponents, "Attr"), strLit(a.Key), strLit(a.Val))
}

// lowerDirective calls the directive by name. @name(args) becomes
// name(args), @name:m1:m2=code becomes name(code, "m1", "m2").
func (l *Lowerer) lowerDirective(d ast.DirectiveNode) (goast.Expr, error) {
	switch t := d.(type) {
	case *ast.Directive:
		name, mods, _ := strings.Cut(t.Name, ":")
		src, err := l.codeSource(t.Code)
		if err != nil {
			return nil, err
		}
		ex, err := parser.ParseExpr(name + src)
		if err != nil {
			return nil, fmt.Errorf("%w @%s%s: %w", ErrInvalidExpression, t.Name, src, err)
		}
		ce, ok := ex.(*goast.CallExpr)
		if !ok {
			return nil, fmt.Errorf("%w @%s%s: not a call", ErrInvalidExpression, t.Name, src)
		}
		if mods != "" {
			for _, m := range strings.Split(mods, ":") {
				ce.Args = append(ce.Args, strLit(m))
			}
		}
		return ce, nil
	case *ast.AttrDirective:
		ex, err := l.Code(t.Code)
		if err != nil {
			return nil, err
		}
		fn, err := parser.ParseExpr(t.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: directive name %q: %w", ErrInvalidExpression, t.Name, err)
		}
		args := []goast.Expr{ex}
		for _, m := range t.Modifiers {
			args = append(args, strLit(m))
		}
		return call(fn, args...), nil
	default:
		return nil, fmt.Errorf("unsupported directive type %T", d)
	}
}

// parseStartTag reads the tag name and static attributes from raw start tag
// text. Names come back lower-cased and attribute values unescaped.
func parseStartTag(openTag string) (string, []html.Attribute, error) {
	z := html.NewTokenizer(strings.NewReader(openTag))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return "", nil, fmt.Errorf("%w %q", ErrInvalidStartTag, openTag)
	}

	name, hasAttr := z.TagName()
	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return string(name), attrs, nil
}

func checkCloseTag(tag, closeTag string) error {
	name := strings.TrimSuffix(strings.TrimPrefix(closeTag, "</"), ">")
	name = strings.TrimSpace(name)
	if !strings.EqualFold(name, tag) {
		return fmt.Errorf("%w: <%s> closed by %s", ErrMismatchedCloseTag, tag, closeTag)
	}
	return nil
}

func (l *Lowerer) sel(pkg, name string) goast.Expr {
	l.used[pkg] = true
	return &goast.SelectorExpr{X: goast.NewIdent(pkg), Sel: goast.NewIdent(name)}
}

func call(fun goast.Expr, args ...goast.Expr) *goast.CallExpr {
	return &goast.CallExpr{Fun: fun, Args: args}
}

func strLit(s string) goast.Expr {
	return &goast.BasicLit{Kind: gotoken.STRING, Value: fmt.Sprintf("%q", s)}
}

func printExpr(ex goast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, gotoken.NewFileSet(), ex); err != nil {
		return "", err
	}
	return buf.String(), nil
}
