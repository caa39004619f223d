// Package diag renders compile errors for the terminal.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kilianc/hlx/internal/hlx/parser"
)

var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
	ColorAccent = lipgloss.Color("#F59E0B") // Amber

	locationStyle = lipgloss.NewStyle().Bold(true)
	messageStyle  = lipgloss.NewStyle().Foreground(ColorError)
	gutterStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// Format renders err. Syntax errors get a path:line:col prefix, the
// offending source line and a caret under the column; other errors are
// returned as their message.
func Format(path string, src []byte, err error, color bool) string {
	render := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		return render(messageStyle, err.Error())
	}

	var b strings.Builder
	b.WriteString(render(locationStyle, fmt.Sprintf("%s:%d:%d:", path, se.Line, se.Column)))
	b.WriteString(" ")
	b.WriteString(render(messageStyle, se.Message))

	lines := strings.Split(string(src), "\n")
	if se.Line < 1 || se.Line > len(lines) {
		return b.String()
	}
	line := strings.TrimRight(lines[se.Line-1], "\r")

	gutter := fmt.Sprintf("%4d | ", se.Line)
	b.WriteString("\n")
	b.WriteString(render(gutterStyle, gutter))
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(render(gutterStyle, strings.Repeat(" ", len(gutter)-2)+"| "))
	b.WriteString(caretPadding(line, se.Column))
	b.WriteString(render(caretStyle, "^"))

	return b.String()
}

// caretPadding reproduces the tabs of line before the 1-based rune column so
// the caret lines up.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
		i++
	}
	return pad.String()
}
