package ast

// Inspect traverses the tree rooted at x in depth-first order. If f returns
// false, the children of the current node are skipped.
func Inspect(x any, f func(any) bool) {
	if x == nil || !f(x) {
		return
	}
	switch n := x.(type) {
	case *TopLevel:
		for _, s := range n.Segments {
			Inspect(s, f)
		}
	case *EmbeddedCode:
		for _, s := range n.Segments {
			Inspect(s, f)
		}
	case *Literal:
		for _, c := range n.Nodes {
			Inspect(c, f)
		}
	case *Element:
		for _, p := range n.Properties {
			Inspect(p, f)
		}
		for _, d := range n.Directives {
			Inspect(d, f)
		}
		for _, c := range n.Content {
			Inspect(c, f)
		}
	case *Insert:
		Inspect(n.Code, f)
	case *Property:
		Inspect(n.Code, f)
	case *Directive:
		Inspect(n.Code, f)
	case *AttrDirective:
		Inspect(n.Code, f)
	}
}

// Dump converts the tree rooted at x into maps and slices suitable for JSON
// or YAML encoding. Every map carries a "kind" key.
func Dump(x any) any {
	switch n := x.(type) {
	case *TopLevel:
		return map[string]any{"kind": "TopLevel", "segments": dumpSegments(n.Segments)}
	case *EmbeddedCode:
		return map[string]any{"kind": "EmbeddedCode", "segments": dumpSegments(n.Segments)}
	case *CodeText:
		return map[string]any{"kind": "CodeText", "text": n.Text}
	case *Literal:
		nodes := make([]any, 0, len(n.Nodes))
		for _, c := range n.Nodes {
			nodes = append(nodes, Dump(c))
		}
		return map[string]any{"kind": "Literal", "column": n.Column, "newlines": n.Newlines, "nodes": nodes}
	case *Element:
		props := make([]any, 0, len(n.Properties))
		for _, p := range n.Properties {
			props = append(props, Dump(p))
		}
		dirs := make([]any, 0, len(n.Directives))
		for _, d := range n.Directives {
			dirs = append(dirs, Dump(d))
		}
		content := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			content = append(content, Dump(c))
		}
		return map[string]any{
			"kind":       "Element",
			"openTag":    n.OpenTag,
			"properties": props,
			"directives": dirs,
			"content":    content,
			"closeTag":   n.CloseTag,
		}
	case *Text:
		return map[string]any{"kind": "Text", "text": n.Text}
	case *Comment:
		return map[string]any{"kind": "Comment", "text": n.Text}
	case *Insert:
		return map[string]any{"kind": "Insert", "column": n.Column, "code": Dump(n.Code)}
	case *Property:
		return map[string]any{"kind": "Property", "name": n.Name, "code": Dump(n.Code)}
	case *Directive:
		return map[string]any{"kind": "Directive", "name": n.Name, "code": Dump(n.Code)}
	case *AttrDirective:
		mods := n.Modifiers
		if mods == nil {
			mods = []string{}
		}
		return map[string]any{"kind": "AttrDirective", "name": n.Name, "modifiers": mods, "code": Dump(n.Code)}
	default:
		return nil
	}
}

func dumpSegments(segs []Segment) []any {
	out := make([]any, 0, len(segs))
	for _, s := range segs {
		out = append(out, Dump(s))
	}
	return out
}
