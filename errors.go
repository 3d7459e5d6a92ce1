package hml

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates lexer and parser failures.
type ErrorKind int

const (
	ErrUnexpectedCharacter ErrorKind = iota
	ErrExpectedTagName
	ErrExpectedWhitespaceAfterTag
	ErrUnexpectedNewlineInQuotedString
	ErrExpectedEquals
	ErrUnexpectedEOF
	ErrUnexpectedTagIndent
	ErrUnexpectedAttribute
	ErrBeyondEndOfTokens
	ErrEmptyName
	ErrUnmappedPrefix
	ErrBadName
	ErrMismatchedCloseTag
	ErrIO
)

// Error is a structured lexer or parser failure. Span covers the
// offending input; only ErrBeyondEndOfTokens and not-yet-located
// markup errors lack one.
type Error struct {
	Kind     ErrorKind
	Span     Span
	HasSpan  bool
	Ch       rune   // ErrUnexpectedCharacter, ErrExpectedEquals.
	Expected int    // ErrUnexpectedTagIndent: the permitted depth.
	Name     string // Offending name, prefix or attribute.
	Open     string // ErrMismatchedCloseTag: the open element's name.
	Err      error  // ErrIO: the underlying read error.
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrUnexpectedCharacter:
		msg = fmt.Sprintf("unexpected character %q", e.Ch)
	case ErrExpectedTagName:
		msg = "expected a tag name"
	case ErrExpectedWhitespaceAfterTag:
		msg = "expected whitespace after tag"
	case ErrUnexpectedNewlineInQuotedString:
		msg = "unexpected newline in quoted string"
	case ErrExpectedEquals:
		msg = fmt.Sprintf("expected '=' after attribute name, found %q", e.Ch)
	case ErrUnexpectedEOF:
		msg = "unexpected end of input"
	case ErrUnexpectedTagIndent:
		msg = fmt.Sprintf("tag nested too deeply, expected depth %d", e.Expected)
	case ErrUnexpectedAttribute:
		msg = fmt.Sprintf("attribute %s is not attached to a tag", e.Name)
	case ErrBeyondEndOfTokens:
		return "no more events after end of document"
	case ErrEmptyName:
		msg = "empty name"
	case ErrUnmappedPrefix:
		msg = fmt.Sprintf("namespace prefix %q is not declared", e.Name)
	case ErrBadName:
		msg = fmt.Sprintf("invalid name %q", e.Name)
	case ErrMismatchedCloseTag:
		msg = fmt.Sprintf("close tag %s does not match open element %s", e.Name, e.Open)
	case ErrIO:
		msg = fmt.Sprintf("read error: %v", e.Err)
	default:
		msg = fmt.Sprintf("unknown error %d", e.Kind)
	}
	if e.HasSpan {
		return fmt.Sprintf("%s: %s", e.Span.Start, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind, so callers can test against
// &Error{Kind: ...} sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func spanError(kind ErrorKind, span Span) *Error {
	return &Error{Kind: kind, Span: span, HasSpan: true}
}

// withSpan attaches span to a structured error that lacks one.
func withSpan(err error, span Span) error {
	var e *Error
	if errors.As(err, &e) && !e.HasSpan {
		e.Span, e.HasSpan = span, true
	}
	return err
}
