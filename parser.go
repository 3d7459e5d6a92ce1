package hml

import "strings"

// TokenFetcher supplies tokens to the parser. ok reports whether a
// token was produced; false signals exhaustion of the source.
type TokenFetcher func() (tok Token, ok bool, err error)

// openTag is a buffered TagOpen token awaiting depth resolution.
type openTag struct {
	span   Span
	prefix string
	name   string
	depth  int
	boxed  bool
}

// closeTag is a buffered TagClose token with its name already
// resolved.
type closeTag struct {
	span  Span
	name  Name
	qname string
}

// stackElement is an open element. Its Name is resolved when the
// StartElement event is finalized, after all attributes have been
// seen.
type stackElement struct {
	parentDepth int
	span        Span
	prefix      string
	name        string
	attrs       Attributes
	resolved    Name
}

func (e *stackElement) qname() string {
	if e.prefix == "" {
		return e.name
	}
	return e.prefix + ":" + e.name
}

// Parser converts a token stream into markup events. It buffers at
// most one pending token plus one pending open or close tag, so each
// NextEvent call picks deterministically from a small priority list.
type Parser struct {
	version int

	startEmitted bool
	endEmitted   bool
	finished     bool
	pendingEOF   bool

	tagDepth int
	stack    []*stackElement

	pendingOpen  *openTag
	pendingClose *closeTag
	pendingTok   *Token

	// building is true while the top of the stack is still
	// accumulating attributes.
	building bool

	// tokenPos is the end of the most recently consumed token; used
	// for the zero-width spans of synthesized events.
	tokenPos Position
}

// NewParser creates a parser with document version 1.00.
func NewParser() *Parser {
	return &Parser{version: 100, tokenPos: PositionNone}
}

// SetVersion sets the document version scaled by 100 (100 means
// 1.00). Chainable.
func (p *Parser) SetVersion(v int) *Parser {
	p.version = v
	return p
}

// NextEvent consumes tokens from fetch until it can emit the next
// event. The same namespace stack must be passed for the whole
// document. After EndDocument, further calls fail with
// ErrBeyondEndOfTokens.
func (p *Parser) NextEvent(st *NamespaceStack, fetch TokenFetcher) (Event, error) {
	if !p.startEmitted {
		p.startEmitted = true
		return Event{Type: EventStartDocument, Span: p.herePos(), Version: p.version}, nil
	}
	for {
		if p.finished {
			return Event{}, &Error{Kind: ErrBeyondEndOfTokens}
		}
		if p.endEmitted {
			p.finished = true
			return Event{Type: EventEndDocument, Span: p.herePos()}, nil
		}

		var (
			ev  *Event
			err error
		)
		switch {
		case p.pendingEOF:
			ev = p.handleEOF(st)
		case p.pendingClose != nil:
			ct := p.pendingClose
			p.pendingClose = nil
			ev, err = p.handleCloseTag(st, ct)
		case p.pendingOpen != nil:
			ot := p.pendingOpen
			p.pendingOpen = nil
			ev, err = p.handleOpenTag(st, ot)
		case p.pendingTok != nil:
			tok := *p.pendingTok
			p.pendingTok = nil
			ev, err = p.handleToken(st, tok)
		default:
			tok, ok, ferr := fetch()
			if ferr != nil {
				return Event{}, wrapFetchError(ferr)
			}
			if !ok {
				tok = Token{Type: TokenEndOfFile, Span: p.herePos()}
			}
			ev, err = p.handleToken(st, tok)
		}
		if err != nil {
			return Event{}, err
		}
		if ev != nil {
			return *ev, nil
		}
	}
}

func wrapFetchError(err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Kind: ErrIO, Err: err}
}

// herePos is a zero-width span at the last consumed token's end.
func (p *Parser) herePos() Span {
	return Span{Start: p.tokenPos, End: p.tokenPos}
}

func (p *Parser) handleToken(st *NamespaceStack, tok Token) (*Event, error) {
	if tok.Type == TokenWhitespace {
		return nil, nil
	}

	// Anything but an attribute completes the element under
	// construction; the token is replayed afterwards.
	if p.building && tok.Type != TokenAttribute {
		p.building = false
		p.pendingTok = &tok
		return p.finalizeStartElement(st)
	}

	p.tokenPos = tok.Span.End
	switch tok.Type {
	case TokenComment:
		lines := make([]int, len(tok.Lines))
		for i, s := range tok.Lines {
			lines[i] = len(s)
		}
		return &Event{
			Type:  EventComment,
			Span:  tok.Span,
			Text:  strings.Join(tok.Lines, "\n"),
			Lines: lines,
		}, nil
	case TokenTagOpen:
		p.pendingOpen = &openTag{
			span:   tok.Span,
			prefix: tok.Prefix,
			name:   tok.Name,
			depth:  tok.Depth,
			boxed:  tok.Boxed,
		}
		return nil, nil
	case TokenTagClose:
		name, err := NewName(st, tok.Prefix, tok.Name)
		if err != nil {
			return nil, withSpan(err, tok.Span)
		}
		p.pendingClose = &closeTag{span: tok.Span, name: name, qname: tok.qname()}
		return nil, nil
	case TokenAttribute:
		if !p.building {
			return nil, &Error{Kind: ErrUnexpectedAttribute, Name: tok.qname(), Span: tok.Span, HasSpan: true}
		}
		top := p.stack[len(p.stack)-1]
		if err := top.attrs.Add(st, tok.Prefix, tok.Name, tok.Value); err != nil {
			return nil, withSpan(err, tok.Span)
		}
		return nil, nil
	case TokenCharacters:
		return &Event{Type: EventContent, Span: tok.Span, Kind: ContentInterpretable, Text: tok.Value}, nil
	case TokenRawCharacters:
		return &Event{Type: EventContent, Span: tok.Span, Kind: ContentRaw, Text: tok.Value}, nil
	case TokenEndOfFile:
		p.pendingEOF = true
		return nil, nil
	}
	return nil, nil
}

// finalizeStartElement resolves the top element's name against the
// now fully populated namespace frame, so declarations on the element
// itself apply to its own tag.
func (p *Parser) finalizeStartElement(st *NamespaceStack) (*Event, error) {
	top := p.stack[len(p.stack)-1]
	name, err := NewName(st, top.prefix, top.name)
	if err != nil {
		return nil, withSpan(err, top.span)
	}
	top.resolved = name
	return &Event{
		Type: EventStartElement,
		Span: top.span,
		Tag:  Tag{Name: name, Attributes: top.attrs},
	}, nil
}

func (p *Parser) handleOpenTag(st *NamespaceStack, ot *openTag) (*Event, error) {
	switch {
	case ot.depth <= p.tagDepth:
		// The opener closes preceding siblings first.
		p.pendingOpen = ot
		return p.popElement(st), nil
	case ot.depth == p.tagDepth+1:
		st.PushFrame()
		p.stack = append(p.stack, &stackElement{
			parentDepth: p.tagDepth,
			span:        ot.span,
			prefix:      ot.prefix,
			name:        ot.name,
		})
		p.building = true
		p.tagDepth = ot.depth
		if ot.boxed {
			// Children inside the box restart at depth 1.
			p.tagDepth = 0
		}
		return nil, nil
	default:
		return nil, &Error{Kind: ErrUnexpectedTagIndent, Expected: p.tagDepth + 1, Span: ot.span, HasSpan: true}
	}
}

func (p *Parser) handleCloseTag(st *NamespaceStack, ct *closeTag) (*Event, error) {
	if p.tagDepth > 0 {
		// Close elements opened by '#' depth inside the box first.
		p.pendingClose = ct
		return p.popElement(st), nil
	}
	if len(p.stack) == 0 {
		return nil, &Error{Kind: ErrMismatchedCloseTag, Name: ct.qname, Span: ct.span, HasSpan: true}
	}
	top := p.stack[len(p.stack)-1]
	if top.resolved != ct.name {
		return nil, &Error{
			Kind:    ErrMismatchedCloseTag,
			Name:    ct.qname,
			Open:    top.qname(),
			Span:    ct.span,
			HasSpan: true,
		}
	}
	return p.popElement(st), nil
}

// popElement closes the top element, restoring its parent's depth and
// namespace scope.
func (p *Parser) popElement(st *NamespaceStack) *Event {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	st.PopFrame()
	p.tagDepth = top.parentDepth
	return &Event{Type: EventEndElement, Span: p.herePos(), Name: top.resolved}
}

func (p *Parser) handleEOF(st *NamespaceStack) *Event {
	if len(p.stack) > 0 {
		return p.popElement(st)
	}
	p.pendingEOF = false
	p.endEmitted = true
	return nil
}
