package hml

// Standard namespace URIs bound in every xmlns-mode stack.
const (
	XMLNamespaceURI   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)

type nsMapping struct {
	prefix PrefixID
	uri    URIID
}

// Namespace interns prefix, URI and local-name strings and hands out
// stable ids. Id 0 is reserved for "none"; interned entries get ids
// starting at 1. The empty string always maps to the none id.
type Namespace struct {
	xmlns    bool
	prefixes []string
	uris     []string
	names    []string
	mappings map[nsMapping]struct{}
}

// NewNamespace creates an empty pool. xmlns selects whether XML-style
// xmlns attribute semantics are applied during parsing.
func NewNamespace(xmlns bool) *Namespace {
	return &Namespace{
		xmlns:    xmlns,
		mappings: make(map[nsMapping]struct{}),
	}
}

// Xmlns reports whether xmlns attribute semantics are in effect.
func (ns *Namespace) Xmlns() bool { return ns.xmlns }

func intern(list *[]string, s string) int {
	if s == "" {
		return 0
	}
	for i, e := range *list {
		if e == s {
			return i + 1
		}
	}
	*list = append(*list, s)
	return len(*list)
}

// InternPrefix returns the id for prefix s, interning it if needed.
func (ns *Namespace) InternPrefix(s string) PrefixID {
	return PrefixID(intern(&ns.prefixes, s))
}

// InternURI returns the id for URI s, interning it if needed.
func (ns *Namespace) InternURI(s string) URIID {
	return URIID(intern(&ns.uris, s))
}

// InternName returns the id for local name s, interning it if needed.
func (ns *Namespace) InternName(s string) NameID {
	return NameID(intern(&ns.names, s))
}

// FindPrefix returns the id of an already interned prefix without
// inserting it.
func (ns *Namespace) FindPrefix(s string) (PrefixID, bool) {
	if s == "" {
		return 0, true
	}
	for i, e := range ns.prefixes {
		if e == s {
			return PrefixID(i + 1), true
		}
	}
	return 0, false
}

// Prefix returns the string for a prefix id; the none id yields "".
func (ns *Namespace) Prefix(id PrefixID) string {
	if id == 0 {
		return ""
	}
	return ns.prefixes[id-1]
}

// URI returns the string for a URI id; the none id yields "".
func (ns *Namespace) URI(id URIID) string {
	if id == 0 {
		return ""
	}
	return ns.uris[id-1]
}

// Name returns the string for a name id; the none id yields "".
func (ns *Namespace) Name(id NameID) string {
	if id == 0 {
		return ""
	}
	return ns.names[id-1]
}

// RecordMapping remembers that prefix has been bound to uri at some
// point during the document's life. Idempotent.
func (ns *Namespace) RecordMapping(prefix PrefixID, uri URIID) {
	ns.mappings[nsMapping{prefix: prefix, uri: uri}] = struct{}{}
}

// HasMapping reports whether prefix has ever been bound to uri.
func (ns *Namespace) HasMapping(prefix PrefixID, uri URIID) bool {
	_, ok := ns.mappings[nsMapping{prefix: prefix, uri: uri}]
	return ok
}
