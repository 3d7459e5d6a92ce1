package hml

import (
	"fmt"
	"io"
)

// An XMLWriter serializes markup events as XML. Feed it the event
// stream of a Reader to convert an HML document.
type XMLWriter struct {
	w  io.Writer
	ns *Namespace
}

// NewXMLWriter returns a writer emitting XML to w. Names are
// rendered through ns, which must be the pool the events were parsed
// with.
func NewXMLWriter(w io.Writer, ns *Namespace) *XMLWriter {
	return &XMLWriter{w: w, ns: ns}
}

// WriteEvent serializes one event.
func (x *XMLWriter) WriteEvent(ev Event) error {
	switch ev.Type {
	case EventStartDocument:
		_, err := fmt.Fprintf(x.w, "<?xml version=\"%d.%02d\" encoding=\"utf-8\" ?>\n",
			ev.Version/100, ev.Version%100)
		return err
	case EventEndDocument:
		_, err := io.WriteString(x.w, "\n")
		return err
	case EventStartElement:
		if _, err := fmt.Fprintf(x.w, "<%s", x.qname(ev.Tag.Name)); err != nil {
			return err
		}
		for _, a := range ev.Tag.Attributes {
			if _, err := fmt.Fprintf(x.w, " %s=\"%s\"", x.qname(a.Name), Escape(a.Value, EscapeAttr)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(x.w, ">")
		return err
	case EventEndElement:
		_, err := fmt.Fprintf(x.w, "</%s>", x.qname(ev.Name))
		return err
	case EventContent:
		text := ev.Text
		if ev.Kind == ContentInterpretable {
			replaced, err := ReplaceEntities(text)
			if err != nil {
				return err
			}
			text = replaced
		}
		_, err := io.WriteString(x.w, Escape(text, EscapePCDATA))
		return err
	case EventComment:
		_, err := fmt.Fprintf(x.w, "<!-- %s -->", ev.Text)
		return err
	case EventProcessingInstruction:
		if ev.PIData == "" {
			_, err := fmt.Fprintf(x.w, "<?%s?>", x.ns.Name(ev.PIName))
			return err
		}
		_, err := fmt.Fprintf(x.w, "<?%s %s?>", x.ns.Name(ev.PIName), ev.PIData)
		return err
	}
	return nil
}

func (x *XMLWriter) qname(n Name) string {
	local := x.ns.Name(n.Local)
	if prefix := x.ns.Prefix(n.Prefix); prefix != "" {
		return prefix + ":" + local
	}
	return local
}
