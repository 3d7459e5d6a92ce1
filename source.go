package hml

import (
	"fmt"
	"strings"
)

// Source holds a complete HML document and gives indexed access to
// its code points with their positions. It can also quote source
// lines for error reporting.
type Source struct {
	text       string
	runes      []rune
	positions  []Position // Position of runes[i]; one extra entry for end of input.
	lineStarts []int      // Rune index of the first rune of each line.
}

// NewSource prepares text for lexing.
func NewSource(text string) *Source {
	s := &Source{
		text:       text,
		runes:      make([]rune, 0, len(text)),
		positions:  make([]Position, 0, len(text)+1),
		lineStarts: []int{0},
	}
	pos := PositionNone
	for _, r := range text {
		s.runes = append(s.runes, r)
		s.positions = append(s.positions, pos)
		pos = pos.Advance(r)
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, len(s.runes))
		}
	}
	s.positions = append(s.positions, pos)
	return s
}

// Len returns the number of code points in the source.
func (s *Source) Len() int { return len(s.runes) }

// At returns the code point at index i.
func (s *Source) At(i int) rune { return s.runes[i] }

// Pos returns the position of the code point at index i. i may equal
// Len, giving the end-of-input position.
func (s *Source) Pos(i int) Position { return s.positions[i] }

// Text returns the source text between the code points at i and j.
func (s *Source) Text(i, j int) string {
	return s.text[s.positions[i].Byte:s.positions[j].Byte]
}

// NumLines returns the number of lines in the source.
func (s *Source) NumLines() int { return len(s.lineStarts) }

// Line returns the text of the 1-based line n without its trailing
// newline.
func (s *Source) Line(n int) string {
	start := s.lineStarts[n-1]
	end := len(s.runes)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return string(s.runes[start:end])
}

// Context renders the source lines covered by span with a numbered
// gutter, a caret underline beneath the spanned columns, and the line
// preceding the span for orientation.
func (s *Source) Context(span Span) string {
	var b strings.Builder

	first := span.Start.Line
	last := span.End.Line
	if last > first && span.End.Col == 1 {
		last--
	}
	if last > s.NumLines() {
		last = s.NumLines()
	}

	if first > 1 {
		fmt.Fprintf(&b, "%4d |  %s\n", first-1, s.Line(first-1))
	}
	for n := first; n <= last; n++ {
		fmt.Fprintf(&b, "%4d |  %s\n", n, s.Line(n))
	}

	// Underline the spanned columns of the first line.
	endCol := span.End.Col
	if last != first {
		endCol = len([]rune(s.Line(first))) + 1
	}
	width := endCol - span.Start.Col
	if width < 1 {
		width = 1
	}
	b.WriteString("     |  ")
	b.WriteString(strings.Repeat(" ", span.Start.Col-1))
	b.WriteString(strings.Repeat("^", width))
	b.WriteString("\n     |\n")
	return b.String()
}
