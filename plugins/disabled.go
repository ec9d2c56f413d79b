package plugins

import (
	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// disabledElementChecker cancels native interaction events on elements
// that are disabled (or that this engine disabled): a disabled element
// must stay inert even when its markup still carries behavior attributes.
type disabledElementChecker struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// DisabledElementChecker builds the disabled-element guard.
func DisabledElementChecker(h Host) api.Capability {
	return &disabledElementChecker{host: h, b: newNodeBinder("data-ak-disabled-check-bound")}
}

var disabledCheckKeys = []string{
	engine.LinkClickSelector,
	engine.ButtonClickSelector,
	engine.FormSubmitSelector,
}

func (p *disabledElementChecker) Connect() {
	for _, key := range disabledCheckKeys {
		for _, n := range queryEntry(p.host, key) {
			p.bindNode(n)
		}
	}
}

func (p *disabledElementChecker) Disconnect() { p.b.unbindAll() }

func (p *disabledElementChecker) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		for _, key := range disabledCheckKeys {
			if matchesEntry(p.host, n, key) {
				p.bindNode(n)
				break
			}
		}
	}
}

func (p *disabledElementChecker) bindNode(n api.Node) {
	p.b.bind(n, EventClick, func(ev *api.Event) {
		if isDisabled(n) {
			ev.Cancel()
		}
	})
}

// elementEnabler re-enables elements: inserted nodes that arrive in the
// disabled state this engine manages are swept clean, and a completed
// submission re-enables its own element. Re-enabling an enabled element
// is a no-op.
type elementEnabler struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// ElementEnabler builds the re-enabling capability.
func ElementEnabler(h Host) api.Capability {
	return &elementEnabler{host: h, b: newNodeBinder("data-ak-enabler-bound")}
}

func (p *elementEnabler) Connect() {
	for _, key := range []string{engine.FormSubmitSelector, engine.LinkClickSelector} {
		for _, n := range queryEntry(p.host, key) {
			p.bindNode(n)
		}
	}
}

func (p *elementEnabler) Disconnect() { p.b.unbindAll() }

func (p *elementEnabler) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		// Only stale disabled state is swept here: an element this
		// session disabled carries the engine mark and is re-enabled by
		// its own completion event, not by the mutation record the
		// disabling itself produced.
		if _, marked := n.Attr(AttrDisabledMark); !marked && matchesEntry(p.host, n, engine.FormEnableSelector) {
			enable(n)
		}
		if matchesEntry(p.host, n, engine.FormSubmitSelector) || matchesEntry(p.host, n, engine.LinkClickSelector) {
			p.bindNode(n)
		}
	}
}

func (p *elementEnabler) bindNode(n api.Node) {
	p.b.bind(n, EventComplete, func(*api.Event) {
		enable(n)
	})
}

func enable(n api.Node) {
	n.RemoveAttr(AttrDisabled)
	n.RemoveAttr(AttrDisabledMark)
}

// elementDisabler disables an element when its submission begins, so a
// double click cannot fire twice. It listens after confirm in core order
// and backs off when the event was canceled. Disabling twice is a no-op.
type elementDisabler struct {
	api.NopCapability
	host    Host
	links   *nodeBinder
	submits *nodeBinder
}

// ElementDisabler builds the disable-on-submit capability.
func ElementDisabler(h Host) api.Capability {
	return &elementDisabler{
		host:    h,
		links:   newNodeBinder("data-ak-disabler-bound"),
		submits: newNodeBinder("data-ak-disabler-submit-bound"),
	}
}

func (p *elementDisabler) Connect() {
	for _, n := range queryEntry(p.host, engine.LinkDisableSelector) {
		p.bindLink(n)
	}
	for _, n := range queryEntry(p.host, engine.FormDisableSelector) {
		p.bindSubmit(n)
	}
}

func (p *elementDisabler) Disconnect() {
	p.links.unbindAll()
	p.submits.unbindAll()
}

func (p *elementDisabler) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.LinkDisableSelector) {
			p.bindLink(n)
		}
		if matchesEntry(p.host, n, engine.FormDisableSelector) {
			p.bindSubmit(n)
		}
	}
}

func (p *elementDisabler) bindLink(n api.Node) {
	p.links.bind(n, EventAkClick, p.disable(n))
}

func (p *elementDisabler) bindSubmit(n api.Node) {
	p.submits.bind(n, EventSubmit, p.disable(n))
}

func (p *elementDisabler) disable(n api.Node) api.Listener {
	return func(ev *api.Event) {
		if ev.Canceled() {
			return
		}
		// Mark first: a tick dispatched between the two writes must
		// already see the element as engine-disabled.
		n.SetAttr(AttrDisabledMark, "")
		n.SetAttr(AttrDisabled, "")
	}
}
