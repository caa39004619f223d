package parser

import (
	"regexp"
	"strings"

	"github.com/kilianc/hlx/internal/hlx/ast"
)

var (
	// prefix unary operators + identifier: !ok, -n, &v
	rxCodePrefix = regexp.MustCompile(`^[+\-!~^*&]*[a-zA-Z_$][a-zA-Z_$0-9]*`)
	// property chain: .Name.First
	rxCodeInterim = regexp.MustCompile(`^(?:\.[a-zA-Z_$][a-zA-Z_$0-9]*)+`)
	rxCodeSuffix  = regexp.MustCompile(`^(?:\+\+|--)`)
)

var parens = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

func (s *state) atOpenParen() bool {
	_, ok := parens[s.peek()]
	return ok && !s.eof
}

// codeBuilder collects embedded code, cutting a new CodeText segment each
// time a nested literal is spliced in.
type codeBuilder struct {
	segs []ast.Segment
	text strings.Builder
}

func (b *codeBuilder) write(s string) {
	b.text.WriteString(s)
}

func (b *codeBuilder) flush() {
	if b.text.Len() > 0 {
		b.segs = append(b.segs, &ast.CodeText{Text: b.text.String()})
		b.text.Reset()
	}
}

func (b *codeBuilder) literal(lit *ast.Literal) {
	b.flush()
	b.segs = append(b.segs, lit)
}

func (b *codeBuilder) finish() *ast.EmbeddedCode {
	b.flush()
	return &ast.EmbeddedCode{Segments: b.segs}
}

// embeddedCode recognizes one expression:
//
//	[unary ops]ident[.chain] { (...)|[...]|{...} [.chain] } [++|--]
func (s *state) embeddedCode() (*ast.EmbeddedCode, error) {
	b := &codeBuilder{}

	if part := s.split(rxCodePrefix); part != "" {
		b.write(part)
		b.write(s.split(rxCodeInterim))
	}

	for s.atOpenParen() {
		if err := s.balancedParens(b); err != nil {
			return nil, err
		}
		b.write(s.split(rxCodeInterim))
	}

	b.write(s.split(rxCodeSuffix))

	code := b.finish()
	if len(code.Segments) == 0 {
		return nil, s.fail(ErrEmptyEmbeddedCode)
	}

	return code, nil
}

// balancedParens consumes a bracket group through its matching closer.
// Strings and comments inside are opaque; markup inside becomes a nested
// literal.
func (s *state) balancedParens(b *codeBuilder) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	start := s.mark()
	end := parens[s.peek()]

	b.write(s.peek())
	s.next()

	for !s.eof && !s.is(end) {
		switch {
		case s.isQuote():
			str, err := s.quotedString()
			if err != nil {
				return err
			}
			b.write(str)
		case s.is("//"):
			b.write(s.lineComment())
		case s.is("/*"):
			c, err := s.blockComment()
			if err != nil {
				return err
			}
			b.write(c)
		case s.is("<") && !operandBefore(b.text.String()), s.is("<!--"):
			lit, err := s.literal()
			if err != nil {
				return err
			}
			b.literal(lit)
		case s.atOpenParen():
			if err := s.balancedParens(b); err != nil {
				return err
			}
		default:
			b.write(s.peek())
			s.next()
		}
	}

	if s.eof {
		return s.failAt(start, ErrUnterminatedParens)
	}

	b.write(s.peek())
	s.next()

	return nil
}
