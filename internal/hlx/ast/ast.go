package ast

// Segment is a piece of code-mode text: either *CodeText or *Literal.
type Segment interface {
	segment()
}

// Node is a piece of markup: *Element, *Comment, *Insert or *Text.
type Node interface {
	node()
}

// DirectiveNode is *Directive or *AttrDirective.
type DirectiveNode interface {
	directive()
}

// TopLevel is the root of a parsed file.
type TopLevel struct {
	Segments []Segment
}

// CodeText is verbatim host-language source.
type CodeText struct {
	Text string
}

func (*CodeText) segment() {}

// Literal is one contiguous markup block inside code.
type Literal struct {
	// Column is the 0-based column of the literal's first token.
	Column int
	// Newlines counts the line breaks the literal spans in the source,
	// including those inside properties and directives.
	Newlines int
	Nodes    []Node
}

func (*Literal) segment() {}

type Element struct {
	// OpenTag is the raw start tag, with properties and directives removed.
	OpenTag    string
	Properties []*Property
	Directives []DirectiveNode
	Content    []Node
	// CloseTag is empty for self-closing elements.
	CloseTag string
}

func (*Element) node() {}

// SelfClosing reports whether the element was written as <tag ... />.
func (e *Element) SelfClosing() bool {
	return e.CloseTag == ""
}

type Text struct {
	Text string
}

func (*Text) node() {}

// Comment holds the whole <!-- ... --> including delimiters.
type Comment struct {
	Text string
}

func (*Comment) node() {}

// Insert is an @expr splice inside markup content.
type Insert struct {
	Column int
	Code   *EmbeddedCode
}

func (*Insert) node() {}

// Property is an attribute whose value is code: <input value=name>.
type Property struct {
	Name string
	Code *EmbeddedCode
}

// Directive is the call form: @name(args).
type Directive struct {
	Name string
	Code *EmbeddedCode
}

func (*Directive) directive() {}

// AttrDirective is the assignment form: @name:mod1:mod2 = code.
type AttrDirective struct {
	Name      string
	Modifiers []string
	Code      *EmbeddedCode
}

func (*AttrDirective) directive() {}

// EmbeddedCode is a code expression inside markup. Parenthesized groups may
// hold nested literals, which appear as their own segments.
type EmbeddedCode struct {
	Segments []Segment
}
