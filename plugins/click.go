package plugins

import (
	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// clickHandler intercepts clicks on declaratively marked links and
// buttons: it cancels the native default and re-emits the interaction as
// an attr:click event the downstream capabilities react to. Disabled
// elements are left alone. It must run before method promotion and
// element disabling, which is why it heads the core order.
type clickHandler struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// ClickHandler builds the click interception capability.
func ClickHandler(h Host) api.Capability {
	return &clickHandler{host: h, b: newNodeBinder("data-ak-click-bound")}
}

func (p *clickHandler) Connect() {
	for _, key := range []string{engine.LinkClickSelector, engine.ButtonClickSelector} {
		for _, n := range queryEntry(p.host, key) {
			p.bindNode(n)
		}
	}
}

func (p *clickHandler) Disconnect() { p.b.unbindAll() }

func (p *clickHandler) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.LinkClickSelector) || matchesEntry(p.host, n, engine.ButtonClickSelector) {
			p.bindNode(n)
		}
	}
}

func (p *clickHandler) bindNode(n api.Node) {
	p.b.bind(n, EventClick, func(ev *api.Event) {
		if ev.Canceled() || isDisabled(n) {
			return
		}
		ev.Cancel()
		n.Dispatch(&api.Event{Type: EventAkClick})
	})
}
