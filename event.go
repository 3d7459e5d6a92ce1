package hml

import "fmt"

// EventType represents the type of a markup event.
type EventType int

const (
	EventStartDocument EventType = iota
	EventEndDocument
	EventStartElement
	EventEndElement
	EventContent
	EventComment
	EventProcessingInstruction
)

// ContentType classifies the text of a Content event.
type ContentType int

const (
	ContentInterpretable ContentType = iota // Subject to escape handling.
	ContentRaw                              // Verbatim.
	ContentWhitespace                       // Insignificant whitespace.
)

// Event is one namespace-aware markup event. Payload fields are
// populated according to Type.
type Event struct {
	Type    EventType
	Span    Span
	Version int         // StartDocument: version scaled by 100.
	Tag     Tag         // StartElement.
	Name    Name        // EndElement.
	Kind    ContentType // Content.
	Text    string      // Content and Comment text.
	Lines   []int       // Comment: length of each source line.
	PIName  NameID      // ProcessingInstruction target.
	PIData  string      // ProcessingInstruction data, may be empty.
}

// String returns a human-readable representation of the event.
func (e Event) String() string {
	switch e.Type {
	case EventStartDocument:
		return fmt.Sprintf("StartDocument(version=%d)", e.Version)
	case EventEndDocument:
		return "EndDocument"
	case EventStartElement:
		return fmt.Sprintf("StartElement(%d attrs)", len(e.Tag.Attributes))
	case EventEndElement:
		return "EndElement"
	case EventContent:
		return fmt.Sprintf("Content(%q)", e.Text)
	case EventComment:
		return fmt.Sprintf("Comment(%q)", e.Text)
	case EventProcessingInstruction:
		return "ProcessingInstruction"
	default:
		return fmt.Sprintf("Unknown(%d)", e.Type)
	}
}
