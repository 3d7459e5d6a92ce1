package hml

// PrefixID identifies an interned namespace prefix. The zero value
// means "no prefix".
type PrefixID int

// URIID identifies an interned namespace URI. The zero value means
// "no namespace".
type URIID int

// NameID identifies an interned local name. The zero value means
// "no name".
type NameID int

// IsNone reports whether the id is the "no prefix" value.
func (id PrefixID) IsNone() bool { return id == 0 }

// IsNone reports whether the id is the "no namespace" value.
func (id URIID) IsNone() bool { return id == 0 }

// IsNone reports whether the id is the "no name" value.
func (id NameID) IsNone() bool { return id == 0 }
