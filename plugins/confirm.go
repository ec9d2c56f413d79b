package plugins

import (
	"github.com/attrkit/attrkit/api"
)

const confirmBindSelector = `[data-confirm]`

// confirm gates interactions behind the registered confirm callbacks. The
// callbacks run in registration order; the first to return false cancels
// the interaction. With no callbacks registered everything proceeds, so an
// embedder without a dialog system loses nothing.
//
// confirm is ordered before elementDisabler on purpose: disabling must see
// the confirmation verdict.
type confirm struct {
	api.NopCapability
	host    Host
	clicks  *nodeBinder
	submits *nodeBinder
}

// Confirm builds the confirmation capability.
func Confirm(h Host) api.Capability {
	return &confirm{
		host:    h,
		clicks:  newNodeBinder("data-ak-confirm-bound"),
		submits: newNodeBinder("data-ak-confirm-submit-bound"),
	}
}

func (p *confirm) Connect() {
	for _, n := range p.host.Document().QuerySelectorAll(confirmBindSelector) {
		p.bindNode(n)
	}
}

func (p *confirm) Disconnect() {
	p.clicks.unbindAll()
	p.submits.unbindAll()
}

func (p *confirm) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if n.Matches(confirmBindSelector) {
			p.bindNode(n)
		}
	}
}

func (p *confirm) bindNode(n api.Node) {
	p.clicks.bind(n, EventAkClick, p.gate(n))
	p.submits.bind(n, EventSubmit, p.gate(n))
}

func (p *confirm) gate(n api.Node) api.Listener {
	return func(ev *api.Event) {
		if ev.Canceled() {
			return
		}
		msg, ok := n.Attr(AttrConfirm)
		if !ok {
			return
		}
		for _, fn := range p.host.ConfirmCallbacks() {
			if !fn(msg, n) {
				ev.Cancel()
				return
			}
		}
	}
}
