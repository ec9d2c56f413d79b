package plugins

import (
	"strings"

	"github.com/attrkit/attrkit/api"
)

const methodBindSelector = `a[data-method], a[data-masked-method]`

// method promotes a link's declared verb into the pending request method
// attribute when the link is activated. It reads both the plain and the
// masked form so it keeps working after methodMask rewrites.
type method struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// Method builds the method-override capability.
func Method(h Host) api.Capability {
	return &method{host: h, b: newNodeBinder("data-ak-method-bound")}
}

func (p *method) Connect() {
	for _, n := range p.host.Document().QuerySelectorAll(methodBindSelector) {
		p.bindNode(n)
	}
}

func (p *method) Disconnect() { p.b.unbindAll() }

func (p *method) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if n.Matches(methodBindSelector) {
			p.bindNode(n)
		}
	}
}

func (p *method) bindNode(n api.Node) {
	p.b.bind(n, EventAkClick, func(ev *api.Event) {
		if ev.Canceled() {
			return
		}
		verb, ok := n.Attr(AttrMethod)
		if !ok {
			verb, ok = n.Attr(AttrMaskedMethod)
		}
		if !ok || verb == "" {
			return
		}
		n.SetAttr(AttrPendingMethod, strings.ToUpper(verb))
	})
}

// methodMask rewrites data-method into data-masked-method so that crawlers
// following raw markup never see destructive verbs on plain links. Active
// only when the MaskLinkMethods configuration flag is set.
type methodMask struct {
	api.NopCapability
	host Host
}

// MethodMask builds the link-verb masking capability.
func MethodMask(h Host) api.Capability { return &methodMask{host: h} }

func (p *methodMask) Connect() {
	if !p.host.MaskLinkMethods() {
		return
	}
	for _, n := range p.host.Document().QuerySelectorAll(`a[data-method]`) {
		p.mask(n)
	}
}

func (p *methodMask) ObserverCallback(nodes []api.Node) {
	if !p.host.MaskLinkMethods() {
		return
	}
	for _, n := range nodes {
		if n.Matches(`a[data-method]`) {
			p.mask(n)
		}
	}
}

func (p *methodMask) mask(n api.Node) {
	verb, ok := n.Attr(AttrMethod)
	if !ok {
		return
	}
	n.SetAttr(AttrMaskedMethod, verb)
	n.RemoveAttr(AttrMethod)
}
