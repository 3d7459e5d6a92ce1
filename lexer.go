package hml

import "unicode"

// Lexer tokenizes an HML source. At exhaustion it returns an
// EndOfFile token; further calls keep returning it.
type Lexer struct {
	src *Source
	i   int // Index of the next unread code point.
}

// NewLexer creates a lexer over src.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) peek() (rune, bool) {
	if l.i >= l.src.Len() {
		return 0, false
	}
	return l.src.At(l.i), true
}

func (l *Lexer) peekAt(k int) (rune, bool) {
	if l.i+k >= l.src.Len() {
		return 0, false
	}
	return l.src.At(l.i + k), true
}

func (l *Lexer) advance() { l.i++ }

func (l *Lexer) spanFrom(start int) Span {
	return Span{Start: l.src.Pos(start), End: l.src.Pos(l.i)}
}

// charSpan covers the single code point at the cursor, or is
// zero-width at end of input.
func (l *Lexer) charSpan() Span {
	start := l.src.Pos(l.i)
	if l.i < l.src.Len() {
		return Span{Start: start, End: l.src.Pos(l.i + 1)}
	}
	return Span{Start: start, End: start}
}

func (l *Lexer) text(i, j int) string { return l.src.Text(i, j) }

// NextToken returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	start := l.i
	l.skipWhitespace()
	if l.i > start {
		return Token{Type: TokenWhitespace, Span: l.spanFrom(start)}, nil
	}

	ch, ok := l.peek()
	if !ok {
		p := l.src.Pos(l.i)
		return Token{Type: TokenEndOfFile, Span: Span{Start: p, End: p}}, nil
	}

	switch {
	case ch == ';':
		return l.scanComment()
	case ch == '#':
		return l.scanHash()
	case isQuote(ch):
		return l.scanQuoted(l.i, 0, TokenCharacters)
	case ch == 'r':
		return l.scanRawOrAttribute()
	case isNameStart(ch):
		return l.scanAttribute()
	}
	return Token{}, &Error{Kind: ErrUnexpectedCharacter, Ch: ch, Span: l.charSpan(), HasSpan: true}
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		l.advance()
	}
}

// scanComment reads a ';' comment line and merges any immediately
// following comment lines into the same token.
func (l *Lexer) scanComment() (Token, error) {
	start := l.i
	var lines []string
	for {
		l.advance() // ';'
		lineStart := l.i
		for {
			ch, ok := l.peek()
			if !ok || ch == '\n' {
				break
			}
			l.advance()
		}
		lines = append(lines, l.text(lineStart, l.i))

		// Another ';' after whitespace continues the comment.
		save := l.i
		l.skipWhitespace()
		if ch, ok := l.peek(); ok && ch == ';' {
			continue
		}
		l.i = save
		return Token{Type: TokenComment, Span: l.spanFrom(start), Lines: lines}, nil
	}
}

// scanHash handles everything introduced by a '#' run: hash-padded
// quoted strings and tags.
func (l *Lexer) scanHash() (Token, error) {
	start := l.i
	hashes := 0
	for {
		ch, ok := l.peek()
		if !ok || ch != '#' {
			break
		}
		hashes++
		l.advance()
	}
	if ch, ok := l.peek(); ok && isQuote(ch) {
		return l.scanQuoted(start, hashes, TokenCharacters)
	}
	return l.scanTag(start, hashes)
}

// scanQuoted reads a quoted string whose closing quote must be
// followed by exactly hashes '#' characters. The value is the raw
// text between the quotes; escapes are not interpreted here.
func (l *Lexer) scanQuoted(start, hashes int, typ TokenType) (Token, error) {
	q, _ := l.peek()
	l.advance()
	bodyStart := l.i
	for {
		ch, ok := l.peek()
		if !ok {
			return Token{}, spanError(ErrUnexpectedEOF, l.spanFrom(start))
		}
		if hashes == 0 {
			if ch == '\n' {
				return Token{}, spanError(ErrUnexpectedNewlineInQuotedString, l.spanFrom(start))
			}
			if ch == q {
				value := l.text(bodyStart, l.i)
				l.advance()
				return Token{Type: typ, Span: l.spanFrom(start), Value: value}, nil
			}
			l.advance()
			continue
		}
		if ch == q {
			j, n := l.i+1, 0
			for j < l.src.Len() && n < hashes && l.src.At(j) == '#' {
				j++
				n++
			}
			if n == hashes {
				value := l.text(bodyStart, l.i)
				l.i = j
				return Token{Type: typ, Span: l.spanFrom(start), Value: value}, nil
			}
		}
		l.advance()
	}
}

// scanTag reads a tag name after its '#' run, with an optional '{' or
// '}' suffix deciding between a boxed opener and a closer.
func (l *Lexer) scanTag(start, depth int) (Token, error) {
	prefix, name, err := l.scanQName()
	if err != nil {
		return Token{}, err
	}

	typ := TokenTagOpen
	boxed := false
	if ch, ok := l.peek(); ok {
		switch ch {
		case '{':
			boxed = true
			l.advance()
		case '}':
			typ = TokenTagClose
			l.advance()
		}
	}

	if ch, ok := l.peek(); ok && !unicode.IsSpace(ch) {
		return Token{}, &Error{Kind: ErrExpectedWhitespaceAfterTag, Ch: ch, Span: l.charSpan(), HasSpan: true}
	}
	return Token{
		Type:   typ,
		Span:   l.spanFrom(start),
		Prefix: prefix,
		Name:   name,
		Depth:  depth,
		Boxed:  boxed,
	}, nil
}

// scanQName reads name or prefix:name.
func (l *Lexer) scanQName() (prefix, name string, err error) {
	first := l.scanName()
	if first == "" {
		return "", "", spanError(ErrExpectedTagName, l.charSpan())
	}
	if ch, ok := l.peek(); ok && ch == ':' {
		l.advance()
		second := l.scanName()
		if second == "" {
			return "", "", spanError(ErrExpectedTagName, l.charSpan())
		}
		return first, second, nil
	}
	return "", first, nil
}

// scanName reads a maximal name run, or "" when the cursor is not at
// a name-start character.
func (l *Lexer) scanName() string {
	ch, ok := l.peek()
	if !ok || !isNameStart(ch) {
		return ""
	}
	start := l.i
	l.advance()
	for {
		ch, ok := l.peek()
		if !ok || !isName(ch) {
			break
		}
		l.advance()
	}
	return l.text(start, l.i)
}

// scanRawOrAttribute disambiguates a leading 'r': a raw string when
// followed by '#' padding or a quote, otherwise the start of an
// attribute name.
func (l *Lexer) scanRawOrAttribute() (Token, error) {
	start := l.i
	next, ok := l.peekAt(1)
	switch {
	case ok && next == '#':
		l.advance() // 'r'
		hashes := 0
		for {
			ch, ok := l.peek()
			if !ok || ch != '#' {
				break
			}
			hashes++
			l.advance()
		}
		ch, ok := l.peek()
		if !ok {
			return Token{}, spanError(ErrUnexpectedEOF, l.spanFrom(start))
		}
		if !isQuote(ch) {
			return Token{}, &Error{Kind: ErrUnexpectedCharacter, Ch: ch, Span: l.charSpan(), HasSpan: true}
		}
		return l.scanQuoted(start, hashes, TokenRawCharacters)
	case ok && isQuote(next):
		l.advance() // 'r'
		return l.scanQuoted(start, 0, TokenRawCharacters)
	default:
		return l.scanAttribute()
	}
}

// scanAttribute reads name=value with an optional prefix on the name.
func (l *Lexer) scanAttribute() (Token, error) {
	start := l.i
	prefix, name, err := l.scanQName()
	if err != nil {
		return Token{}, err
	}

	ch, ok := l.peek()
	if !ok {
		return Token{}, spanError(ErrUnexpectedEOF, l.spanFrom(start))
	}
	if ch != '=' {
		return Token{}, &Error{Kind: ErrExpectedEquals, Ch: ch, Span: l.charSpan(), HasSpan: true}
	}
	l.advance()

	value, err := l.scanAttrValue()
	if err != nil {
		return Token{}, err
	}
	return Token{
		Type:   TokenAttribute,
		Span:   l.spanFrom(start),
		Prefix: prefix,
		Name:   name,
		Value:  value,
	}, nil
}

// scanAttrValue reads a quoted string or an unquoted run of
// non-whitespace characters.
func (l *Lexer) scanAttrValue() (string, error) {
	ch, ok := l.peek()
	if !ok {
		return "", spanError(ErrUnexpectedEOF, l.charSpan())
	}
	if isQuote(ch) {
		tok, err := l.scanQuoted(l.i, 0, TokenCharacters)
		if err != nil {
			return "", err
		}
		return tok.Value, nil
	}
	start := l.i
	for {
		ch, ok := l.peek()
		if !ok || unicode.IsSpace(ch) {
			break
		}
		l.advance()
	}
	return l.text(start, l.i), nil
}

// Character predicates. The name classes follow the XML production
// for names.

func isQuote(r rune) bool { return r == '\'' || r == '"' }

func isNameStart(r rune) bool {
	switch {
	case r == '_',
		r >= 'A' && r <= 'Z',
		r >= 'a' && r <= 'z',
		r >= 0xC0 && r <= 0xD6,
		r >= 0xD8 && r <= 0xF6,
		r >= 0xF8 && r <= 0x2FF,
		r >= 0x370 && r <= 0x37D,
		r >= 0x37F && r <= 0x1FFF,
		r >= 0x200C && r <= 0x200D,
		r >= 0x2070 && r <= 0x218F,
		r >= 0x2C00 && r <= 0x2FEF,
		r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF,
		r >= 0xFDF0 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isName(r rune) bool {
	if isNameStart(r) {
		return true
	}
	switch {
	case r == '-',
		r == '.',
		r == 0xB7,
		r >= '0' && r <= '9',
		r >= 0x300 && r <= 0x36F,
		r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
