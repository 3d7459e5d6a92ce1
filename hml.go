// Package hml provides functionality for parsing HML documents into
// streams of namespace-aware markup events.
//
// HML is a human-writable markup language equivalent in structure to
// XML. Tags are introduced by a run of '#' characters whose count
// encodes nesting depth, '{'/'}' boxed subtrees reset the depth
// inside them, quoted strings may be padded with '#' characters to
// let quotes appear literally, and namespaces are declared with
// xmlns attributes as in XML.
package hml

// Reader parses an HML document into a stream of markup events. It
// wires a Source, a Lexer, a Parser and a NamespaceStack together;
// the pieces can also be driven individually.
type Reader struct {
	src    *Source
	lexer  *Lexer
	parser *Parser
	stack  *NamespaceStack
}

// NewReader creates a reader over input. The pool ns may be shared
// across documents so they agree on interned ids.
func NewReader(input string, ns *Namespace) *Reader {
	src := NewSource(input)
	return &Reader{
		src:    src,
		lexer:  NewLexer(src),
		parser: NewParser(),
		stack:  NewNamespaceStack(ns),
	}
}

// SetVersion sets the document version scaled by 100. Chainable.
func (r *Reader) SetVersion(v int) *Reader {
	r.parser.SetVersion(v)
	return r
}

// Source returns the underlying source, for diagnostics.
func (r *Reader) Source() *Source { return r.src }

// Namespace returns the pool names resolve against.
func (r *Reader) Namespace() *Namespace { return r.stack.Namespace() }

// Next returns the next markup event. The stream starts with
// StartDocument and ends with EndDocument; calls after that fail.
func (r *Reader) Next() (Event, error) {
	return r.parser.NextEvent(r.stack, r.fetch)
}

func (r *Reader) fetch() (Token, bool, error) {
	tok, err := r.lexer.NextToken()
	if err != nil {
		return Token{}, false, err
	}
	return tok, true, nil
}
