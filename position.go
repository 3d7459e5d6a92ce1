package hml

import (
	"fmt"
	"unicode/utf8"
)

// Position is a location in the input: a 0-based byte offset plus
// 1-based line and column numbers.
type Position struct {
	Byte int
	Line int
	Col  int
}

// PositionNone is the canonical zero position, at the very start of
// the input.
var PositionNone = Position{Byte: 0, Line: 1, Col: 1}

// Advance returns the position just past r.
func (p Position) Advance(r rune) Position {
	p.Byte += utf8.RuneLen(r)
	if r == '\n' {
		p.Line++
		p.Col = 1
	} else {
		p.Col++
	}
	return p
}

// String formats the position as line:col.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a region of the input. Start is inclusive, End exclusive.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}
