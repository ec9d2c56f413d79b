package dom

import (
	"errors"
	"sync"

	"github.com/attrkit/attrkit/api"
)

// Observer is the reference subtree-observation primitive. Records are
// delivered synchronously, one record per callback batch, on the
// goroutine performing the mutation.
type Observer struct {
	doc *Document

	mu sync.Mutex
	cb func([]api.MutationRecord)
}

var _ api.Observer = (*Observer)(nil)

// ErrNilCallback is returned by Observe when no callback is supplied.
var ErrNilCallback = errors.New("dom: observe with nil callback")

// NewObserver creates a detached observer for doc. It reports nothing
// until Observe is called.
func NewObserver(doc *Document) *Observer {
	return &Observer{doc: doc}
}

// Observe registers cb and starts reporting mutations.
func (o *Observer) Observe(cb func(records []api.MutationRecord)) error {
	if cb == nil {
		return ErrNilCallback
	}
	o.mu.Lock()
	o.cb = cb
	o.mu.Unlock()
	o.doc.obsMu.Lock()
	o.doc.observers[o] = struct{}{}
	o.doc.obsMu.Unlock()
	return nil
}

// Disconnect stops reporting. Safe to call when not observing.
func (o *Observer) Disconnect() {
	o.doc.obsMu.Lock()
	delete(o.doc.observers, o)
	o.doc.obsMu.Unlock()
}

func (o *Observer) deliver(rec api.MutationRecord) {
	o.mu.Lock()
	cb := o.cb
	o.mu.Unlock()
	if cb != nil {
		cb([]api.MutationRecord{rec})
	}
}
