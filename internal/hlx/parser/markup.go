package parser

import (
	"regexp"
	"strings"

	"github.com/kilianc/hlx/internal/hlx/ast"
)

var (
	rxWhitespace    = regexp.MustCompile(`^\s*$`)
	rxLeadingWs     = regexp.MustCompile(`^\s+`)
	rxPropertyLeft  = regexp.MustCompile(`\s(\S+)\s*=\s*$`)
	rxDirectiveName = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z_$0-9]*(?::[^\s:=]*)*`)
	rxTagTrailingWs = regexp.MustCompile(`\s+(/?>)$`)
)

func (s *state) ws() bool {
	return !s.eof && rxWhitespace.MatchString(s.peek())
}

func (s *state) atMarkup() bool {
	return s.is("<") || s.is("<!--") || s.is("@")
}

// literal parses a run of sibling markup nodes. Whitespace between them is
// kept only if another node follows; otherwise it is handed back to the
// surrounding code.
func (s *state) literal() (*ast.Literal, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	lit := &ast.Literal{Column: s.col}
	line := s.line

	for !s.eof {
		switch {
		case s.is("<"):
			el, err := s.element()
			if err != nil {
				return nil, err
			}
			lit.Nodes = append(lit.Nodes, el)
		case s.is("<!--"):
			c, err := s.comment()
			if err != nil {
				return nil, err
			}
			lit.Nodes = append(lit.Nodes, c)
		case s.is("@"):
			ins, err := s.insert()
			if err != nil {
				return nil, err
			}
			lit.Nodes = append(lit.Nodes, ins)
		default:
			sp := s.mark()
			ws := s.whitespaceText()
			if !s.atMarkup() {
				s.rollback(sp)
				lit.Newlines = s.line - line
				return lit, nil
			}
			lit.Nodes = append(lit.Nodes, ws)
		}
	}

	lit.Newlines = s.line - line
	return lit, nil
}

func (s *state) element() (*ast.Element, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	start := s.mark()
	el := &ast.Element{}

	tag := s.peek()
	s.next()

	for !s.eof && !s.is(">") && !s.is("/>") {
		switch {
		case s.is("@"):
			d, err := s.directive()
			if err != nil {
				return nil, err
			}
			el.Directives = append(el.Directives, d)
		case s.is("="):
			var err error
			if tag, err = s.property(tag, el); err != nil {
				return nil, err
			}
		case s.is(`"`), s.is("'"):
			tag += s.attrValue()
		default:
			tag += s.peek()
			s.next()
		}
	}

	if s.eof {
		return nil, s.failAt(start, ErrUnterminatedStartTag)
	}

	hasContent := s.is(">")
	tag += s.peek()
	s.next()

	el.OpenTag = collapseBlankLines(rxTagTrailingWs.ReplaceAllString(tag, "$1"))

	if !hasContent {
		return el, nil
	}

	for !s.eof && !s.is("</") {
		var (
			n   ast.Node
			err error
		)
		switch {
		case s.is("<"):
			n, err = s.element()
		case s.is("@"):
			n, err = s.insert()
		case s.is("<!--"):
			n, err = s.comment()
		default:
			n = s.text()
		}
		if err != nil {
			return nil, err
		}
		el.Content = append(el.Content, n)
	}

	if s.eof {
		return nil, s.failAt(start, ErrMissingCloseTag)
	}

	closeStart := s.mark()
	var closeTag strings.Builder
	for !s.eof && !s.is(">") {
		closeTag.WriteString(s.peek())
		s.next()
	}

	if s.eof {
		return nil, s.failAt(closeStart, ErrUnterminatedCloseTag)
	}

	closeTag.WriteString(s.peek())
	s.next()
	el.CloseTag = closeTag.String()

	return el, nil
}

// collapseBlankLines removes whitespace-only lines left behind once
// directives and properties are cut out of a start tag. A newline followed by
// whitespace that reaches another newline is dropped up to that newline.
func collapseBlankLines(tag string) string {
	var sb strings.Builder
	for i := 0; i < len(tag); {
		if tag[i] != '\n' {
			sb.WriteByte(tag[i])
			i++
			continue
		}

		end := i + 1
		for end < len(tag) && isSpace(tag[end]) {
			end++
		}
		last := strings.LastIndexByte(tag[i+1:end], '\n')
		if last <= 0 {
			sb.WriteByte('\n')
			i++
			continue
		}
		i += 1 + last
	}
	return sb.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func (s *state) text() *ast.Text {
	var text strings.Builder

	for !s.eof && !s.is("<") && !s.is("<!--") && !s.is("@") && !s.is("</") {
		text.WriteString(s.peek())
		s.next()
	}

	return &ast.Text{Text: text.String()}
}

func (s *state) whitespaceText() *ast.Text {
	var text strings.Builder

	for s.ws() {
		text.WriteString(s.peek())
		s.next()
	}

	return &ast.Text{Text: text.String()}
}

func (s *state) comment() (*ast.Comment, error) {
	start := s.mark()
	var text strings.Builder

	for !s.eof && !s.is("-->") {
		text.WriteString(s.peek())
		s.next()
	}

	if s.eof {
		return nil, s.failAt(start, ErrUnterminatedComment)
	}

	text.WriteString(s.peek())
	s.next()

	return &ast.Comment{Text: text.String()}, nil
}

// attrValue consumes a quoted attribute value verbatim. '@' and '=' inside
// it are plain text. At end of input the element reports the error.
func (s *state) attrValue() string {
	quote := s.peek()
	var text strings.Builder

	text.WriteString(quote)
	s.next()

	for !s.eof && !s.is(quote) {
		text.WriteString(s.peek())
		s.next()
	}

	if !s.eof {
		text.WriteString(s.peek())
		s.next()
	}

	return text.String()
}

func (s *state) insert() (*ast.Insert, error) {
	col := s.col
	s.next()

	code, err := s.embeddedCode()
	if err != nil {
		return nil, err
	}

	return &ast.Insert{Column: col, Code: code}, nil
}

// property handles '=' inside a start tag. name=code becomes a Property and
// is cut from the tag text; name="..." stays a plain attribute.
func (s *state) property(tag string, el *ast.Element) (string, error) {
	tag += s.peek()
	s.next()

	if s.ws() {
		tag += s.peek()
		s.next()
	}

	m := rxPropertyLeft.FindStringSubmatchIndex(tag)
	if m == nil || s.is(`"`) || s.is("'") {
		return tag, nil
	}

	name := tag[m[2]:m[3]]
	tag = tag[:m[0]]

	s.split(rxLeadingWs)

	code, err := s.embeddedCode()
	if err != nil {
		return "", err
	}
	el.Properties = append(el.Properties, &ast.Property{Name: name, Code: code})

	return tag, nil
}

func (s *state) directive() (ast.DirectiveNode, error) {
	s.next()

	name := s.split(rxDirectiveName)
	if name == "" {
		return nil, s.fail(ErrMissingDirectiveName)
	}

	if s.is("(") {
		b := &codeBuilder{}
		if err := s.balancedParens(b); err != nil {
			return nil, err
		}
		return &ast.Directive{Name: name, Code: b.finish()}, nil
	}

	if s.ws() {
		s.next()
	}

	if !s.is("=") {
		return nil, s.fail(ErrMalformedDirective)
	}

	s.next()
	s.split(rxLeadingWs)

	code, err := s.embeddedCode()
	if err != nil {
		return nil, err
	}

	d := &ast.AttrDirective{Code: code}
	parts := strings.Split(name, ":")
	d.Name = parts[0]
	if len(parts) > 1 {
		d.Modifiers = parts[1:]
	}

	return d, nil
}
