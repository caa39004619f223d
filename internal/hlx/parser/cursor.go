package parser

import (
	"regexp"
	"unicode/utf8"
)

// savepoint is everything needed to rewind the cursor.
type savepoint struct {
	pos  int
	tok  string
	eof  bool
	line int
	col  int
}

// cursor walks a token slice. The current token may be a suffix of
// toks[pos] after split has consumed a prefix of it.
type cursor struct {
	toks []string
	savepoint
}

func newCursor(toks []string) *cursor {
	c := &cursor{toks: toks}
	if len(toks) == 0 {
		c.eof = true
	} else {
		c.tok = toks[0]
	}
	return c
}

// peek returns the current token, or "" at end of stream.
func (c *cursor) peek() string {
	return c.tok
}

func (c *cursor) is(tok string) bool {
	return !c.eof && c.tok == tok
}

func (c *cursor) next() {
	if c.tok == "\n" {
		c.line++
		c.col = 0
	} else {
		c.col += utf8.RuneCountInString(c.tok)
	}

	c.pos++
	if c.pos >= len(c.toks) {
		c.eof = true
		c.tok = ""
	} else {
		c.tok = c.toks[c.pos]
	}
}

func (c *cursor) mark() savepoint {
	return c.savepoint
}

func (c *cursor) rollback(sp savepoint) {
	c.savepoint = sp
}

// split consumes the prefix of the current token matched by re, which must
// be anchored with ^. It never looks past the current token.
func (c *cursor) split(re *regexp.Regexp) string {
	if c.eof {
		return ""
	}
	loc := re.FindStringIndex(c.tok)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return ""
	}

	m := c.tok[:loc[1]]
	c.col += utf8.RuneCountInString(m)
	c.tok = c.tok[loc[1]:]
	if c.tok == "" {
		c.next()
	}
	return m
}
