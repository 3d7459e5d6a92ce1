package hml

// nsFrame is one scope of prefix bindings plus their declaration
// order.
type nsFrame struct {
	bindings map[PrefixID]URIID
	order    []PrefixID
}

// NamespaceStack resolves prefixes against a stack of binding frames,
// one per open element. The base frame binds the empty prefix to the
// empty URI and, in xmlns mode, the standard xml and xmlns prefixes.
type NamespaceStack struct {
	ns     *Namespace
	frames []nsFrame
}

// NewNamespaceStack creates a stack over the given pool with its base
// frame in place.
func NewNamespaceStack(ns *Namespace) *NamespaceStack {
	st := &NamespaceStack{ns: ns}
	st.PushFrame()
	st.Declare(0, 0)
	if ns.xmlns {
		st.Declare(ns.InternPrefix("xml"), ns.InternURI(XMLNamespaceURI))
		st.Declare(ns.InternPrefix("xmlns"), ns.InternURI(XMLNSNamespaceURI))
	}
	return st
}

// Namespace returns the pool the stack resolves against.
func (st *NamespaceStack) Namespace() *Namespace { return st.ns }

// Depth returns the number of frames, including the base frame.
func (st *NamespaceStack) Depth() int { return len(st.frames) }

// PushFrame opens a new binding scope.
func (st *NamespaceStack) PushFrame() {
	st.frames = append(st.frames, nsFrame{bindings: make(map[PrefixID]URIID)})
}

// PopFrame closes the topmost scope. Popping an empty stack is a
// programming error and panics.
func (st *NamespaceStack) PopFrame() {
	if len(st.frames) == 0 {
		panic("hml: namespace stack underflow")
	}
	st.frames = st.frames[:len(st.frames)-1]
}

// Declare binds prefix to uri in the topmost frame, overwriting any
// binding of the same prefix in that frame.
func (st *NamespaceStack) Declare(prefix PrefixID, uri URIID) {
	f := &st.frames[len(st.frames)-1]
	if _, ok := f.bindings[prefix]; !ok {
		f.order = append(f.order, prefix)
	}
	f.bindings[prefix] = uri
	st.ns.RecordMapping(prefix, uri)
}

// DeclareIfUnset binds prefix to uri only when no frame already binds
// it, and reports whether the binding was made.
func (st *NamespaceStack) DeclareIfUnset(prefix PrefixID, uri URIID) bool {
	if _, ok := st.Lookup(prefix); ok {
		return false
	}
	st.Declare(prefix, uri)
	return true
}

// Lookup resolves prefix by searching frames from the topmost down.
func (st *NamespaceStack) Lookup(prefix PrefixID) (URIID, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if uri, ok := st.frames[i].bindings[prefix]; ok {
			return uri, true
		}
	}
	return 0, false
}

// Iterate calls fn for each effective binding. A prefix bound in
// several frames is reported once, with the topmost binding.
func (st *NamespaceStack) Iterate(fn func(prefix PrefixID, uri URIID)) {
	seen := make(map[PrefixID]struct{})
	for i := len(st.frames) - 1; i >= 0; i-- {
		for _, p := range st.frames[i].order {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			fn(p, st.frames[i].bindings[p])
		}
	}
}
