package hml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(NewSource(input))
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == TokenEndOfFile {
			return toks
		}
	}
}

// lexContent lexes input and drops whitespace tokens.
func lexContent(t *testing.T, input string) []Token {
	t.Helper()
	var out []Token
	for _, tok := range lexAll(t, input) {
		if tok.Type != TokenWhitespace {
			out = append(out, tok)
		}
	}
	return out
}

func TestLexerTags(t *testing.T) {
	toks := lexContent(t, "##name ###second  ##close} #open_me{  ##ns:name")
	require.Len(t, toks, 6)

	assert.Equal(t, TokenTagOpen, toks[0].Type)
	assert.Equal(t, "name", toks[0].Name)
	assert.Equal(t, 2, toks[0].Depth)
	assert.False(t, toks[0].Boxed)

	assert.Equal(t, TokenTagOpen, toks[1].Type)
	assert.Equal(t, "second", toks[1].Name)
	assert.Equal(t, 3, toks[1].Depth)

	assert.Equal(t, TokenTagClose, toks[2].Type)
	assert.Equal(t, "close", toks[2].Name)
	assert.Equal(t, 2, toks[2].Depth)

	assert.Equal(t, TokenTagOpen, toks[3].Type)
	assert.Equal(t, "open_me", toks[3].Name)
	assert.Equal(t, 1, toks[3].Depth)
	assert.True(t, toks[3].Boxed)

	assert.Equal(t, TokenTagOpen, toks[4].Type)
	assert.Equal(t, "ns", toks[4].Prefix)
	assert.Equal(t, "name", toks[4].Name)
	assert.Equal(t, 2, toks[4].Depth)

	assert.Equal(t, TokenEndOfFile, toks[5].Type)
}

func TestLexerSpans(t *testing.T) {
	toks := lexAll(t, "#a ##b")
	require.Len(t, toks, 4)

	assert.Equal(t, Position{Byte: 0, Line: 1, Col: 1}, toks[0].Span.Start)
	assert.Equal(t, Position{Byte: 2, Line: 1, Col: 3}, toks[0].Span.End)

	assert.Equal(t, TokenWhitespace, toks[1].Type)
	assert.Equal(t, Position{Byte: 2, Line: 1, Col: 3}, toks[1].Span.Start)
	assert.Equal(t, Position{Byte: 3, Line: 1, Col: 4}, toks[1].Span.End)

	assert.Equal(t, Position{Byte: 3, Line: 1, Col: 4}, toks[2].Span.Start)
	assert.Equal(t, Position{Byte: 6, Line: 1, Col: 7}, toks[2].Span.End)

	// The EndOfFile token repeats at the end position.
	assert.Equal(t, Position{Byte: 6, Line: 1, Col: 7}, toks[3].Span.Start)
	l := NewLexer(NewSource(""))
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, TokenEndOfFile, tok.Type)
	}
}

func TestLexerStrings(t *testing.T) {
	toks := lexContent(t, `'a string'"Another string"####'quoted string'### more'####`)
	require.Len(t, toks, 4)

	assert.Equal(t, TokenCharacters, toks[0].Type)
	assert.Equal(t, "a string", toks[0].Value)

	assert.Equal(t, TokenCharacters, toks[1].Type)
	assert.Equal(t, "Another string", toks[1].Value)

	assert.Equal(t, TokenCharacters, toks[2].Type)
	assert.Equal(t, "quoted string'### more", toks[2].Value)
}

func TestLexerHashStrings(t *testing.T) {
	f := func(name, input, want string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			toks := lexContent(t, input)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenCharacters, toks[0].Type)
			assert.Equal(t, want, toks[0].Value)
		})
	}

	f("one hash", `#'a#b'#`, "a#b")
	f("two hashes", `##"banana"##`, "banana")
	f("newline allowed", "##\"line1\nline2\"##", "line1\nline2")
	f("single quotes", "##'banana\n'##", "banana\n")
	f("quote with too few hashes stays", `##'ab'#cd'##`, "ab'#cd")
}

func TestLexerRawStrings(t *testing.T) {
	f := func(name, input, want string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			toks := lexContent(t, input)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenRawCharacters, toks[0].Type)
			assert.Equal(t, want, toks[0].Value)
		})
	}

	f("plain", `r'banana'`, "banana")
	f("one hash", `r#'banana'#`, "banana")
	f("newline", "r#'banana\n'#", "banana\n")
	f("embedded close", `r##'banana'#' '##`, "banana'#' ")
	f("adjacent quotes", `r##'banana'#''##`, "banana'#'")
}

func TestLexerTagStartingWithR(t *testing.T) {
	// Tags are dispatched on '#' first, so ##rect is never mistaken
	// for a raw string.
	toks := lexContent(t, "##rect ")
	require.Len(t, toks, 2)
	assert.Equal(t, TokenTagOpen, toks[0].Type)
	assert.Equal(t, "rect", toks[0].Name)

	// An 'r' not followed by padding or a quote is an attribute.
	toks = lexContent(t, "rotate=90")
	require.Len(t, toks, 2)
	assert.Equal(t, TokenAttribute, toks[0].Type)
	assert.Equal(t, "rotate", toks[0].Name)
	assert.Equal(t, "90", toks[0].Value)
}

func TestLexerComments(t *testing.T) {
	toks := lexContent(t, "; This is a comment")
	require.Len(t, toks, 2)
	assert.Equal(t, TokenComment, toks[0].Type)
	assert.Equal(t, []string{" This is a comment"}, toks[0].Lines)

	// Consecutive comment lines merge into one token.
	toks = lexContent(t, "; one\n; two\n  ; three\n#tag ")
	require.Len(t, toks, 3)
	assert.Equal(t, TokenComment, toks[0].Type)
	assert.Equal(t, []string{" one", " two", " three"}, toks[0].Lines)
	assert.Equal(t, TokenTagOpen, toks[1].Type)
}

func TestLexerAttributes(t *testing.T) {
	toks := lexContent(t, "not=1 fred='this'")
	require.Len(t, toks, 3)

	assert.Equal(t, TokenAttribute, toks[0].Type)
	assert.Equal(t, "not", toks[0].Name)
	assert.Equal(t, "1", toks[0].Value)

	assert.Equal(t, TokenAttribute, toks[1].Type)
	assert.Equal(t, "fred", toks[1].Name)
	assert.Equal(t, "this", toks[1].Value)

	toks = lexContent(t, `xlink:href="#id"`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokenAttribute, toks[0].Type)
	assert.Equal(t, "xlink", toks[0].Prefix)
	assert.Equal(t, "href", toks[0].Name)
	assert.Equal(t, "#id", toks[0].Value)
}

func TestLexerErrors(t *testing.T) {
	f := func(name, input string, kind ErrorKind) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			l := NewLexer(NewSource(input))
			var err error
			for {
				var tok Token
				tok, err = l.NextToken()
				if err != nil || tok.Type == TokenEndOfFile {
					break
				}
			}
			require.Error(t, err)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, kind, perr.Kind)
		})
	}

	f("unexpected character", "=", ErrUnexpectedCharacter)
	f("newline in plain string", "'abc\ndef'", ErrUnexpectedNewlineInQuotedString)
	f("unterminated string", "'abc", ErrUnexpectedEOF)
	f("unterminated padded string", "##'abc'#", ErrUnexpectedEOF)
	f("tag followed by junk", "##tag!x", ErrExpectedWhitespaceAfterTag)
	f("missing tag name", "## ", ErrExpectedTagName)
	f("missing prefix local name", "##ns: ", ErrExpectedTagName)
	f("missing equals", "attr name", ErrExpectedEquals)
	f("attribute cut short", "attr", ErrUnexpectedEOF)
}
