// Package rt holds the helpers that code generated by hlx calls at render
// time. Generated files import it under the name hlx.
package rt

import (
	"fmt"

	g "maragu.dev/gomponents"
)

// Insert turns the value of an @expression in element content into a node.
//
// Nodes and node slices are spliced as is, strings are escaped, errors and
// fmt.Stringer values render their text, and nil renders nothing.
func Insert(v any) g.Node {
	switch v := v.(type) {
	case nil:
		return g.Group(nil)
	case g.Node:
		return v
	case []g.Node:
		return g.Group(v)
	case string:
		return g.Text(v)
	case []byte:
		return g.Text(string(v))
	case error:
		return g.Text(v.Error())
	case fmt.Stringer:
		return g.Text(v.String())
	default:
		return g.Text(fmt.Sprint(v))
	}
}

// Prop turns a name=expression pair from a start tag into an attribute.
// true gives a bare attribute; false and nil drop it.
func Prop(name string, v any) g.Node {
	switch v := v.(type) {
	case nil:
		return g.Group(nil)
	case bool:
		if !v {
			return g.Group(nil)
		}
		return g.Attr(name)
	case g.Node:
		return v
	case string:
		return g.Attr(name, v)
	case error:
		return g.Attr(name, v.Error())
	case fmt.Stringer:
		return g.Attr(name, v.String())
	default:
		return g.Attr(name, fmt.Sprint(v))
	}
}
