package ast

import (
	"fmt"
	"strings"
)

// Source reconstructs the source text of x. Properties and directives are
// not part of an element's OpenTag, so they are not reproduced.
func Source(x any) string {
	var sb strings.Builder
	writeSource(&sb, x)
	return sb.String()
}

func writeSource(sb *strings.Builder, x any) {
	switch n := x.(type) {
	case *TopLevel:
		for _, s := range n.Segments {
			writeSource(sb, s)
		}
	case *EmbeddedCode:
		for _, s := range n.Segments {
			writeSource(sb, s)
		}
	case *CodeText:
		sb.WriteString(n.Text)
	case *Literal:
		for _, c := range n.Nodes {
			writeSource(sb, c)
		}
	case *Element:
		sb.WriteString(n.OpenTag)
		for _, c := range n.Content {
			writeSource(sb, c)
		}
		sb.WriteString(n.CloseTag)
	case *Text:
		sb.WriteString(n.Text)
	case *Comment:
		sb.WriteString(n.Text)
	case *Insert:
		sb.WriteByte('@')
		writeSource(sb, n.Code)
	case *Directive:
		sb.WriteString("@" + n.Name)
		writeSource(sb, n.Code)
	case *AttrDirective:
		sb.WriteString("@" + strings.Join(append([]string{n.Name}, n.Modifiers...), ":") + "=")
		writeSource(sb, n.Code)
	case *Property:
		sb.WriteString(n.Name + "=")
		writeSource(sb, n.Code)
	case nil:
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", x))
	}
}
