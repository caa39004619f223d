// Package parser turns the token stream of an .hlx file into an ast.TopLevel.
//
// The grammar is a recursive descent over five sub-grammars that share one
// token alphabet: host code, markup elements, markup text, code embedded in
// markup, and string/comment literals that must never be read as markup.
// The only speculative step is whitespace between sibling markup nodes,
// which belongs to the literal only if another markup node follows it.
package parser

import (
	"fmt"
	"strings"

	"github.com/kilianc/hlx/internal/hlx/ast"
	"github.com/kilianc/hlx/internal/hlx/logging"
)

const defaultMaxDepth = 512

type Options struct {
	Logger *logging.Logger
	// MaxDepth bounds nesting of elements, literals and bracket groups.
	MaxDepth int
}

// Parser holds configuration only; every Parse call uses its own cursor, so
// a Parser can be shared between goroutines.
type Parser struct {
	logger   *logging.Logger
	maxDepth int
}

func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	return &Parser{
		logger:   opts.Logger.WithField("component", "parser"),
		maxDepth: opts.MaxDepth,
	}
}

// Parse parses toks into a tree. On error no partial tree is returned and
// the error is a *SyntaxError.
func (p *Parser) Parse(toks []string) (*ast.TopLevel, error) {
	p.logger.Debug("parsing", logging.Fields{"tokens": len(toks)})

	s := &state{cursor: newCursor(toks), maxDepth: p.maxDepth}
	root, err := s.codeTopLevel()
	if err != nil {
		p.logger.Debug("parse failed", logging.Fields{"error": err.Error()})
		return nil, err
	}

	literals := 0
	ast.Inspect(root, func(x any) bool {
		if _, ok := x.(*ast.Literal); ok {
			literals++
		}
		return true
	})
	p.logger.Debug("parsed", logging.Fields{"segments": len(root.Segments), "literals": literals})

	return root, nil
}

// Parse parses toks with default options.
func Parse(toks []string) (*ast.TopLevel, error) {
	return New(Options{}).Parse(toks)
}

type state struct {
	*cursor
	depth    int
	maxDepth int
}

func (s *state) fail(err error) error {
	return s.failAt(s.mark(), err)
}

func (s *state) failAt(sp savepoint, err error) error {
	return &SyntaxError{Err: err, Message: err.Error(), Line: sp.line + 1, Column: sp.col + 1}
}

func (s *state) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		return &SyntaxError{
			Err:     ErrTooDeep,
			Message: fmt.Sprintf("%v (limit %d)", ErrTooDeep, s.maxDepth),
			Line:    s.line + 1,
			Column:  s.col + 1,
		}
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

// codeTopLevel is the entry production.
func (s *state) codeTopLevel() (*ast.TopLevel, error) {
	root := &ast.TopLevel{}
	var text strings.Builder

	for !s.eof {
		switch {
		case s.is("<") && !operandBefore(text.String()), s.is("<!--"):
			if text.Len() > 0 {
				root.Segments = append(root.Segments, &ast.CodeText{Text: text.String()})
				text.Reset()
			}
			lit, err := s.literal()
			if err != nil {
				return nil, err
			}
			root.Segments = append(root.Segments, lit)
		case s.isQuote():
			str, err := s.quotedString()
			if err != nil {
				return nil, err
			}
			text.WriteString(str)
		case s.is("//"):
			text.WriteString(s.lineComment())
		case s.is("/*"):
			c, err := s.blockComment()
			if err != nil {
				return nil, err
			}
			text.WriteString(c)
		default:
			text.WriteString(s.peek())
			s.next()
		}
	}

	if text.Len() > 0 {
		root.Segments = append(root.Segments, &ast.CodeText{Text: text.String()})
	}

	return root, nil
}

// operandBefore reports whether code ends in an operand, in which case a
// following '<' is a comparison or shift rather than the start of a tag.
// A keyword such as return still allows markup to follow without a space.
func operandBefore(code string) bool {
	if code == "" {
		return false
	}
	switch c := code[len(code)-1]; {
	case c == '<', c == ')', c == ']':
		return true
	case isIdentByte(c):
		i := len(code)
		for i > 0 && isIdentByte(code[i-1]) {
			i--
		}
		return !markupKeywords[code[i:]]
	}
	return false
}

// markupKeywords can be directly followed by an expression.
var markupKeywords = map[string]bool{
	"return": true,
	"case":   true,
	"go":     true,
	"defer":  true,
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
