package hml

// Name is a resolved qualified name: an interned prefix, the URI that
// prefix resolved to at the moment the name was built, and the local
// name.
type Name struct {
	Prefix PrefixID
	URI    URIID
	Local  NameID
}

// NewName interns prefix and local in the stack's pool and resolves
// prefix against the current frames. The returned error, if any, is a
// markup error without a span; callers attach the offending token's
// span.
func NewName(st *NamespaceStack, prefix, local string) (Name, error) {
	ns := st.Namespace()
	if local == "" {
		return Name{}, &Error{Kind: ErrEmptyName}
	}
	if !validName(local) || (prefix != "" && !validName(prefix)) {
		bad := local
		if prefix != "" && !validName(prefix) {
			bad = prefix
		}
		return Name{}, &Error{Kind: ErrBadName, Name: bad}
	}
	p := ns.InternPrefix(prefix)
	uri, ok := st.Lookup(p)
	if !ok {
		return Name{}, &Error{Kind: ErrUnmappedPrefix, Name: prefix}
	}
	return Name{Prefix: p, URI: uri, Local: ns.InternName(local)}, nil
}

func validName(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !isName(r) {
			return false
		}
	}
	return true
}

// Attribute pairs a resolved name with its string value.
type Attribute struct {
	Name  Name
	Value string
}

// Attributes is an attribute list in source order. Duplicate names
// are kept as written.
type Attributes []Attribute

// Add resolves and appends an attribute. In xmlns mode, xmlns and
// xmlns:p attributes additionally declare their binding in the
// topmost stack frame before resolution, so the declaration is
// visible to the rest of the element including its own tag.
func (a *Attributes) Add(st *NamespaceStack, prefix, local, value string) error {
	ns := st.Namespace()
	if ns.Xmlns() {
		switch {
		case prefix == "" && local == "xmlns":
			st.Declare(0, ns.InternURI(value))
			prefix, local = "xmlns", "xmlns"
		case prefix == "xmlns":
			st.Declare(ns.InternPrefix(local), ns.InternURI(value))
			prefix = "xmlns"
		}
	}
	name, err := NewName(st, prefix, local)
	if err != nil {
		return err
	}
	*a = append(*a, Attribute{Name: name, Value: value})
	return nil
}

// Tag is an element name with its attributes.
type Tag struct {
	Name       Name
	Attributes Attributes
}
