// Package compile turns an .hlx source file into a gofmt'd Go file.
package compile

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	goparser "go/parser"
	"go/scanner"
	gotoken "go/token"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/kilianc/hlx/internal/hlx/ast"
	"github.com/kilianc/hlx/internal/hlx/gomponents"
	"github.com/kilianc/hlx/internal/hlx/logging"
	"github.com/kilianc/hlx/internal/hlx/parser"
	"github.com/kilianc/hlx/internal/hlx/token"
)

// Header is the first line of every generated file.
const Header = "// Code generated by hlx. DO NOT EDIT."

// Import paths of the packages lowered literals refer to.
const (
	GomponentsPath = "maragu.dev/gomponents"
	HTMLPath       = "maragu.dev/gomponents/html"
	RuntimePath    = "github.com/kilianc/hlx/pkg/hlx/rt"
)

type Options struct {
	Logger   *logging.Logger
	MaxDepth int
}

// CompileFile compiles src, the contents of the .hlx file at path. The path
// is only used in error messages.
func CompileFile(path string, src []byte, opts Options) ([]byte, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetDefault()
	}
	logger = logger.WithFields(logging.Fields{"component": "compile", "path": path})

	toks := token.Split(string(src))
	root, err := parser.New(parser.Options{Logger: logger, MaxDepth: opts.MaxDepth}).Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l := gomponents.New()
	code, points, err := splice(path, root, l)
	if err != nil {
		return nil, err
	}

	fset := gotoken.NewFileSet()
	f, err := goparser.ParseFile(fset, path, code, goparser.ParseComments)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) {
			for _, e := range list {
				e.Pos = sourcePos(points, e.Pos)
			}
		}
		return nil, fmt.Errorf("%s: generated code: %w", path, err)
	}

	imports := []struct{ name, path string }{
		{gomponents.PkgGomponents, GomponentsPath},
		{gomponents.PkgHTML, HTMLPath},
		{gomponents.PkgRuntime, RuntimePath},
	}
	for _, imp := range imports {
		if l.Uses(imp.name) {
			astutil.AddNamedImport(fset, f, imp.name, imp.path)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n\n")
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, fmt.Errorf("%s: format: %w", path, err)
	}

	logger.Debug("compiled", logging.Fields{
		"tokens":   len(toks),
		"literals": len(points),
		"bytes":    buf.Len(),
	})

	return buf.Bytes(), nil
}

// splicePoint records where a literal sat in the source and where its
// lowered expression sits in the spliced code. Lines and columns are 1-based;
// columns count bytes, as go/token does.
type splicePoint struct {
	genLine, genCol       int // first byte of the expression
	genEndLine, genEndCol int // just past the expression
	srcLine, srcEndLine   int
}

// splice rebuilds the file with every top-level literal replaced by its
// lowered expression.
func splice(path string, root *ast.TopLevel, l *gomponents.Lowerer) (string, []splicePoint, error) {
	var (
		out     strings.Builder
		line    = 1
		genLine = 1
		genCol  = 1
		points  []splicePoint
	)
	write := func(s string) {
		out.WriteString(s)
		if i := strings.LastIndexByte(s, '\n'); i >= 0 {
			genLine += strings.Count(s, "\n")
			genCol = len(s) - i
		} else {
			genCol += len(s)
		}
	}

	for _, seg := range root.Segments {
		switch s := seg.(type) {
		case *ast.CodeText:
			write(s.Text)
			line += strings.Count(s.Text, "\n")
		case *ast.Literal:
			ex, err := l.Source(s)
			if err != nil {
				return "", nil, fmt.Errorf("%s:%d:%d: %w", path, line, s.Column+1, err)
			}
			p := splicePoint{genLine: genLine, genCol: genCol, srcLine: line}
			write(ex)
			line += s.Newlines
			p.genEndLine, p.genEndCol, p.srcEndLine = genLine, genCol, line
			points = append(points, p)
		}
	}
	return out.String(), points, nil
}

// sourcePos maps a position in spliced code back to the .hlx file. Lines
// are exact outside spliced expressions; inside one, pos maps to the line the
// literal starts on. The column is dropped wherever it no longer lines up
// with the source.
func sourcePos(points []splicePoint, pos gotoken.Position) gotoken.Position {
	before := func(line, col int) bool {
		return pos.Line < line || pos.Line == line && pos.Column < col
	}

	shift, col := 0, pos.Column
	for _, p := range points {
		if before(p.genLine, p.genCol) {
			break
		}
		if before(p.genEndLine, p.genEndCol) {
			pos.Line, pos.Column = p.srcLine, 0
			return pos
		}
		shift = p.srcEndLine - p.genEndLine
		if pos.Line == p.genEndLine {
			col = 0
		}
	}
	pos.Line += shift
	pos.Column = col
	return pos
}
