// Package token splits .hlx source into the token stream consumed by the parser.
//
// The parser never re-splits tokens, so every lexeme that carries meaning for
// it must arrive as a standalone token:
//
//	<!--  -->  </  />  //  /*  */
//	>  @  =  "  '  `  (  )  [  ]  {  }  \n
//
// '<' is standalone only when a tag name (an ASCII letter) follows it, so
// spaced comparisons and channel receives stay in code text. Whether a
// standalone '<' opens a tag depends on context the tokenizer lacks: in code,
// the parser treats one that directly follows an operand (as in 1<<s or i<n)
// as an operator. Runs of whitespace other than newlines form one token, using
// the same set as RE2's \s, so '\v' is text. Everything else is merged into
// text runs.
package token

import "strings"

var delimiters = []string{"<!--", "-->", "</", "/>", "//", "/*", "*/"}

func isSingle(c byte) bool {
	switch c {
	case '>', '@', '=', '"', '\'', '`', '(', ')', '[', ']', '{', '}', '\n':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\f':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Split tokenizes src. The concatenation of the result always equals src and
// no token is empty.
func Split(src string) []string {
	var (
		toks []string
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			toks = append(toks, text.String())
			text.Reset()
		}
	}

	i := 0
scan:
	for i < len(src) {
		rest := src[i:]
		for _, d := range delimiters {
			if strings.HasPrefix(rest, d) {
				flush()
				toks = append(toks, d)
				i += len(d)
				continue scan
			}
		}

		c := src[i]
		switch {
		case c == '<' && i+1 < len(src) && isLetter(src[i+1]):
			flush()
			toks = append(toks, "<")
			i++
		case isSingle(c):
			flush()
			toks = append(toks, src[i:i+1])
			i++
		case isSpace(c):
			flush()
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		default:
			text.WriteByte(c)
			i++
		}
	}
	flush()

	return toks
}
