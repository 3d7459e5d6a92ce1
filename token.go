package hml

import "fmt"

// TokenType represents the type of a lexical token in HML.
type TokenType int

const (
	TokenEndOfFile TokenType = iota

	// Markup tokens.
	TokenComment  // One or more consecutive ';' comment lines.
	TokenTagOpen  // '#'-run tag opener, optionally boxed with '{'.
	TokenTagClose // '#'-run tag closer suffixed with '}'.

	// Content tokens.
	TokenAttribute     // name=value or prefix:name=value.
	TokenCharacters    // Quoted string, subject to later escape handling.
	TokenRawCharacters // r-prefixed quoted string, taken verbatim.
	TokenWhitespace    // Run of whitespace between tokens.
)

// Token represents a lexical token from HML input. Payload fields are
// populated according to Type.
type Token struct {
	Type   TokenType
	Span   Span
	Prefix string   // Namespace prefix of tags and attributes.
	Name   string   // Local name of tags and attributes.
	Value  string   // Attribute value or string contents.
	Lines  []string // Comment lines, one entry per ';' line.
	Depth  int      // Number of '#' characters on tags.
	Boxed  bool     // True when a tag opener ended in '{'.
}

func (t Token) qname() string {
	if t.Prefix == "" {
		return t.Name
	}
	return t.Prefix + ":" + t.Name
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenEndOfFile:
		return "EOF"
	case TokenComment:
		return fmt.Sprintf("Comment(%d lines)", len(t.Lines))
	case TokenTagOpen:
		if t.Boxed {
			return fmt.Sprintf("TagOpen(%s depth=%d boxed)", t.qname(), t.Depth)
		}
		return fmt.Sprintf("TagOpen(%s depth=%d)", t.qname(), t.Depth)
	case TokenTagClose:
		return fmt.Sprintf("TagClose(%s depth=%d)", t.qname(), t.Depth)
	case TokenAttribute:
		return fmt.Sprintf("Attribute(%s=%q)", t.qname(), t.Value)
	case TokenCharacters:
		return fmt.Sprintf("Characters(%q)", t.Value)
	case TokenRawCharacters:
		return fmt.Sprintf("RawCharacters(%q)", t.Value)
	case TokenWhitespace:
		return "Whitespace"
	default:
		return fmt.Sprintf("Unknown(%d)", t.Type)
	}
}
