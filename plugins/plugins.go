// Package plugins ships the stock behavior capabilities: the fixed,
// priority-ordered core set the engine runs before any extension. Each
// capability is a stateless reaction to lifecycle and mutation events;
// every side effect is idempotent because mutation dispatch may re-enter
// while earlier ticks are still pending.
package plugins

import (
	"sync"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// Host is the slice of the engine a capability is allowed to see.
// *engine.Application satisfies it.
type Host interface {
	Document() api.Document
	SelectorEntry(key string) (engine.SelectorEntry, bool)
	ConfirmCallbacks() []api.ConfirmFunc
	CSRFToken() string
	CSRFParam() string
	MimeTypes() map[string]string
	MaskLinkMethods() bool
	// Enqueue schedules fn on the engine event loop; capabilities doing
	// asynchronous work must re-enter the tree through it.
	Enqueue(fn func())
}

// Declarative attributes the stock capabilities react to.
const (
	AttrMethod       = "data-method"
	AttrMaskedMethod = "data-masked-method"
	AttrRemote       = "data-remote"
	AttrConfirm      = "data-confirm"
	AttrDisableWith  = "data-disable-with"
	AttrDisable      = "data-disable"
	AttrDisabled     = "disabled"

	// Attributes the capabilities write.
	AttrPendingMethod = "data-ak-method"
	AttrDisabledMark  = "data-ak-disabled"
	AttrCSRFToken     = "data-csrf-token"
	AttrCSRFParam     = "data-csrf-param"
	AttrLocation      = "data-location"
)

// Engine-level events flowing between capabilities.
const (
	EventClick    = "click"
	EventSubmit   = "submit"
	EventChange   = "change"
	EventAkClick  = "attr:click"
	EventComplete = "attr:complete"
	EventAkChange = "attr:change"
)

// nodeBinder tracks per-node listener registrations for one capability.
// Binding is idempotent: a node already bound (or carrying the marker
// attribute from an earlier bind) is skipped, which is what keeps
// marker-attribute mutation records from re-binding forever.
type nodeBinder struct {
	marker string

	mu    sync.Mutex
	bound map[api.Node]func()
}

func newNodeBinder(marker string) *nodeBinder {
	return &nodeBinder{marker: marker, bound: make(map[api.Node]func())}
}

func (b *nodeBinder) bind(n api.Node, event string, fn api.Listener) {
	b.mu.Lock()
	if _, ok := b.bound[n]; ok {
		b.mu.Unlock()
		return
	}
	if _, marked := n.Attr(b.marker); marked {
		b.mu.Unlock()
		return
	}
	b.bound[n] = n.On(event, fn)
	b.mu.Unlock()
	n.SetAttr(b.marker, "")
}

func (b *nodeBinder) unbindAll() {
	b.mu.Lock()
	bound := b.bound
	b.bound = make(map[api.Node]func())
	b.mu.Unlock()
	for n, off := range bound {
		off()
		n.RemoveAttr(b.marker)
	}
}

// queryEntry resolves the selector registered under key against the host
// document, honoring the entry's exclusion selector.
func queryEntry(h Host, key string) []api.Node {
	entry, ok := h.SelectorEntry(key)
	if !ok || entry.Selector == "" {
		return nil
	}
	nodes := h.Document().QuerySelectorAll(entry.Selector)
	if entry.Exclude == "" {
		return nodes
	}
	kept := nodes[:0]
	for _, n := range nodes {
		if !n.Matches(entry.Exclude) {
			kept = append(kept, n)
		}
	}
	return kept
}

// matchesEntry reports whether a single node matches the rule under key.
func matchesEntry(h Host, n api.Node, key string) bool {
	entry, ok := h.SelectorEntry(key)
	if !ok || entry.Selector == "" {
		return false
	}
	if !n.Matches(entry.Selector) {
		return false
	}
	return entry.Exclude == "" || !n.Matches(entry.Exclude)
}

func isDisabled(n api.Node) bool {
	if _, ok := n.Attr(AttrDisabled); ok {
		return true
	}
	_, ok := n.Attr(AttrDisabledMark)
	return ok
}
