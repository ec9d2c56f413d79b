package dom

import (
	"github.com/attrkit/attrkit/api"
)

// Element is a node of the tree. A zero tag marks a non-element (text)
// node; those never match selectors but are still reported by the
// observer when inserted.
type Element struct {
	doc  *Document
	tag  string
	text string

	parent   *Element
	children []*Element

	attrs map[string]string

	listenerSeq int
	listeners   map[string][]listenerEntry
}

// listenerEntry keeps listeners in registration order; delivery order is
// part of the contract capabilities build their priority chain on.
type listenerEntry struct {
	id int
	fn api.Listener
}

var _ api.Node = (*Element)(nil)

// Tag returns the element name, or "" for non-element nodes.
func (e *Element) Tag() string { return e.tag }

// Text returns the text content of a non-element node.
func (e *Element) Text() string { return e.text }

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr writes an attribute. Setting an attribute to its current value
// is a no-op and produces no mutation record; mutation-driven capabilities
// rely on that for idempotence.
func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	if old, ok := e.attrs[name]; ok && old == value {
		e.doc.mu.Unlock()
		return
	}
	e.attrs[name] = value
	attached := e.attachedLocked()
	e.doc.mu.Unlock()
	if attached {
		e.doc.notify(api.MutationRecord{
			Type:          api.MutationAttributes,
			Target:        e,
			AttributeName: name,
		})
	}
}

// RemoveAttr deletes an attribute. Removing an absent attribute is a
// no-op and produces no record.
func (e *Element) RemoveAttr(name string) {
	e.doc.mu.Lock()
	if _, ok := e.attrs[name]; !ok {
		e.doc.mu.Unlock()
		return
	}
	delete(e.attrs, name)
	attached := e.attachedLocked()
	e.doc.mu.Unlock()
	if attached {
		e.doc.notify(api.MutationRecord{
			Type:          api.MutationAttributes,
			Target:        e,
			AttributeName: name,
		})
	}
}

// Matches reports whether the element matches the selector list.
func (e *Element) Matches(selector string) bool {
	sels, err := parseSelectorList(selector)
	if err != nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return matchAny(e, sels)
}

// On registers an event listener and returns its removal function.
func (e *Element) On(event string, fn api.Listener) (off func()) {
	e.doc.mu.Lock()
	if e.listeners == nil {
		e.listeners = make(map[string][]listenerEntry)
	}
	e.listenerSeq++
	id := e.listenerSeq
	e.listeners[event] = append(e.listeners[event], listenerEntry{id: id, fn: fn})
	e.doc.mu.Unlock()
	return func() {
		e.doc.mu.Lock()
		entries := e.listeners[event]
		for i, ent := range entries {
			if ent.id == id {
				e.listeners[event] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
		e.doc.mu.Unlock()
	}
}

// Dispatch delivers the event to this node's listeners and reports
// whether default behavior may proceed.
func (e *Element) Dispatch(ev *api.Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	e.doc.mu.RLock()
	entries := e.listeners[ev.Type]
	fns := make([]api.Listener, 0, len(entries))
	for _, ent := range entries {
		fns = append(fns, ent.fn)
	}
	e.doc.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	return !ev.Canceled()
}

// Append attaches child as the last child of e. Attaching to an attached
// parent produces a child-list mutation record targeting e.
func (e *Element) Append(child *Element) {
	e.doc.mu.Lock()
	child.parent = e
	e.children = append(e.children, child)
	attached := e.attachedLocked()
	e.doc.mu.Unlock()
	if attached {
		e.doc.notify(api.MutationRecord{
			Type:       api.MutationChildList,
			Target:     e,
			AddedNodes: []api.Node{child},
		})
	}
}

// AppendBatch attaches several children at once, reported as a single
// child-list record, the way observation primitives coalesce adjacent
// insertions.
func (e *Element) AppendBatch(children ...*Element) {
	e.doc.mu.Lock()
	added := make([]api.Node, 0, len(children))
	for _, child := range children {
		child.parent = e
		e.children = append(e.children, child)
		added = append(added, child)
	}
	attached := e.attachedLocked()
	e.doc.mu.Unlock()
	if attached && len(added) > 0 {
		e.doc.notify(api.MutationRecord{
			Type:       api.MutationChildList,
			Target:     e,
			AddedNodes: added,
		})
	}
}

// attachedLocked reports whether the element is part of the document
// tree. Callers hold doc.mu.
func (e *Element) attachedLocked() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// walk visits e and its descendants depth-first. Callers hold doc.mu.
func (e *Element) walk(visit func(*Element)) {
	visit(e)
	for _, c := range e.children {
		c.walk(visit)
	}
}
