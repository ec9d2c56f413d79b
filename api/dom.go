package api

// Listener reacts to an event dispatched on a node.
type Listener func(ev *Event)

// Event is an interaction or notification flowing through a node. Custom
// engine events carry a short Detail map; native-style events usually have
// none. Canceling an event tells the dispatching side that default
// behavior must not run.
type Event struct {
	Type   string
	Target Node
	Detail map[string]string

	canceled bool
}

// Cancel suppresses the default behavior of the event.
func (e *Event) Cancel() { e.canceled = true }

// Canceled reports whether any listener canceled the event.
func (e *Event) Canceled() bool { return e.canceled }

// Node is one element of the observed tree. Implementations must be safe
// for use from the engine's event loop and from the host that mutates the
// tree.
type Node interface {
	// Tag returns the lowercase element name, or "" for non-elements.
	Tag() string
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Matches reports whether the node matches a compound attribute
	// selector (comma lists, tag, [attr], [attr="v"], :not(...)).
	Matches(selector string) bool
	// On registers a listener and returns its removal function.
	On(event string, fn Listener) (off func())
	// Dispatch delivers ev to the node's listeners and reports whether
	// default behavior may proceed (false when canceled).
	Dispatch(ev *Event) bool
}

// Document is the observed tree plus the page-restore signal the engine
// binds its re-enable sweep to.
type Document interface {
	Root() Node
	QuerySelectorAll(selector string) []Node
	// OnRestore subscribes fn to the restored-from-cache signal and
	// returns its removal function.
	OnRestore(fn func()) (off func())
}
