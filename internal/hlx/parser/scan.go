package parser

import "strings"

func (s *state) isQuote() bool {
	return s.is(`"`) || s.is("'") || s.is("`")
}

// quotedString consumes a string literal, delimiters included. A quote
// preceded by an odd number of backslashes is escaped; raw (backquoted)
// strings have no escapes.
func (s *state) quotedString() (string, error) {
	start := s.mark()
	quote := s.peek()

	var text strings.Builder
	text.WriteString(quote)
	s.next()

	for !s.eof && (!s.is(quote) || quote != "`" && escaped(text.String())) {
		text.WriteString(s.peek())
		s.next()
	}

	if s.eof {
		return "", s.failAt(start, ErrUnterminatedString)
	}

	text.WriteString(s.peek())
	s.next()

	return text.String(), nil
}

// escaped reports whether text ends in an odd run of backslashes.
func escaped(text string) bool {
	n := 0
	for i := len(text) - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// lineComment consumes // through the next newline token. Running into the
// end of input just ends the comment.
func (s *state) lineComment() string {
	var text strings.Builder

	for !s.eof && !s.is("\n") {
		text.WriteString(s.peek())
		s.next()
	}

	if !s.eof {
		text.WriteString(s.peek())
		s.next()
	}

	return text.String()
}

func (s *state) blockComment() (string, error) {
	start := s.mark()
	var text strings.Builder

	for !s.eof && !s.is("*/") {
		text.WriteString(s.peek())
		s.next()
	}

	if s.eof {
		return "", s.failAt(start, ErrUnterminatedBlockComment)
	}

	text.WriteString(s.peek())
	s.next()

	return text.String(), nil
}
