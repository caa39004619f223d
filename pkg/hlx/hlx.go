// Package hlx compiles Go source with inline HTML literals.
//
//	var Greeting = <p class="greeting">Hello, @name!</p>
//
// becomes a gofmt'd Go file where each literal is a maragu.dev/gomponents
// expression.
package hlx

import (
	"github.com/kilianc/hlx/internal/hlx/ast"
	"github.com/kilianc/hlx/internal/hlx/compile"
	"github.com/kilianc/hlx/internal/hlx/parser"
	"github.com/kilianc/hlx/internal/hlx/token"
)

// File is the syntax tree of one source file.
type File = ast.TopLevel

// SyntaxError describes malformed input. Line and Column are 1-based.
type SyntaxError = parser.SyntaxError

// CompileFile compiles a .hlx source (a Go file with embedded `<tag>`
// expressions) into a gofmt'd Go source file.
//
// The result is suitable for writing to "<path>.go" (i.e. "*.hlx.go") and
// checking in.
func CompileFile(path string, src []byte) ([]byte, error) {
	return compile.CompileFile(path, src, compile.Options{})
}

// Parse returns the syntax tree of src without lowering it.
func Parse(src []byte) (*File, error) {
	return parser.Parse(token.Split(string(src)))
}

// Tokenize splits src into the tokens the parser consumes. Joining them
// gives back src.
func Tokenize(src string) []string {
	return token.Split(src)
}
