// Package dom is an in-memory reference implementation of the attrkit
// node-tree contracts: a mutable element tree, a compound attribute
// selector matcher, and a mutation-record observer primitive. It backs the
// examples and tests; embedders with a real document bring their own
// implementation of the api interfaces.
package dom

import (
	"sync"

	"github.com/attrkit/attrkit/api"
)

// Document is an observable element tree.
type Document struct {
	mu   sync.RWMutex
	root *Element

	restoreSeq int
	restoreFns map[int]func()

	obsMu     sync.Mutex
	observers map[*Observer]struct{}
}

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{
		restoreFns: make(map[int]func()),
		observers:  make(map[*Observer]struct{}),
	}
	d.root = &Element{doc: d, tag: "html", attrs: map[string]string{}}
	return d
}

// Root returns the document root.
func (d *Document) Root() api.Node { return d.root }

// RootElement returns the root as a concrete element, for tree building.
func (d *Document) RootElement() *Element { return d.root }

// CreateElement builds a detached element. Attribute writes on a detached
// element produce no mutation records; attach it with Append.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, tag: tag, attrs: map[string]string{}}
}

// CreateText builds a detached non-element node carrying text.
func (d *Document) CreateText(text string) *Element {
	return &Element{doc: d, text: text, attrs: map[string]string{}}
}

// QuerySelectorAll returns the attached nodes matching the selector list,
// in document (depth-first) order.
func (d *Document) QuerySelectorAll(selector string) []api.Node {
	sels, err := parseSelectorList(selector)
	if err != nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []api.Node
	d.root.walk(func(el *Element) {
		if matchAny(el, sels) {
			out = append(out, el)
		}
	})
	return out
}

// OnRestore subscribes fn to the restored-from-cache signal.
func (d *Document) OnRestore(fn func()) (off func()) {
	d.mu.Lock()
	d.restoreSeq++
	id := d.restoreSeq
	d.restoreFns[id] = fn
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		delete(d.restoreFns, id)
		d.mu.Unlock()
	}
}

// Restore fires the restore signal, as a host would when a cached page
// becomes visible again.
func (d *Document) Restore() {
	d.mu.RLock()
	fns := make([]func(), 0, len(d.restoreFns))
	for _, fn := range d.restoreFns {
		fns = append(fns, fn)
	}
	d.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// notify fans one mutation record out to the connected observers. Called
// without d.mu held.
func (d *Document) notify(rec api.MutationRecord) {
	d.obsMu.Lock()
	obs := make([]*Observer, 0, len(d.observers))
	for o := range d.observers {
		obs = append(obs, o)
	}
	d.obsMu.Unlock()
	for _, o := range obs {
		o.deliver(rec)
	}
}
