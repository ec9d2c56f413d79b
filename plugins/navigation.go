package plugins

import (
	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// navigationAdapter applies a completed submission's response location to
// the document root, standing in for the host's navigation machinery.
type navigationAdapter struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// NavigationAdapter builds the response-navigation capability.
func NavigationAdapter(h Host) api.Capability {
	return &navigationAdapter{host: h, b: newNodeBinder("data-ak-nav-bound")}
}

func (p *navigationAdapter) Connect() {
	for _, key := range []string{engine.FormSubmitSelector, engine.LinkClickSelector} {
		for _, n := range queryEntry(p.host, key) {
			p.bindNode(n)
		}
	}
}

func (p *navigationAdapter) Disconnect() { p.b.unbindAll() }

func (p *navigationAdapter) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.FormSubmitSelector) || matchesEntry(p.host, n, engine.LinkClickSelector) {
			p.bindNode(n)
		}
	}
}

func (p *navigationAdapter) bindNode(n api.Node) {
	p.b.bind(n, EventComplete, func(ev *api.Event) {
		loc := ev.Detail["location"]
		if loc == "" {
			return
		}
		p.host.Document().Root().SetAttr(AttrLocation, loc)
	})
}
