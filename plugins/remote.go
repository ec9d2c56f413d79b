package plugins

import (
	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// remoteWatcher binds newly inserted remote inputs: a change on a remote
// select/input/textarea is re-emitted as attr:change for embedder
// extensions to consume. It is a pure mutation consumer, the only core
// capability driven entirely by ObserverCallback plus the connect sweep.
type remoteWatcher struct {
	api.NopCapability
	host Host
	b    *nodeBinder
}

// RemoteWatcher builds the remote-input watcher.
func RemoteWatcher(h Host) api.Capability {
	return &remoteWatcher{host: h, b: newNodeBinder("data-ak-remote-bound")}
}

func (p *remoteWatcher) Connect() {
	for _, n := range queryEntry(p.host, engine.InputChangeSelector) {
		p.bindNode(n)
	}
}

func (p *remoteWatcher) Disconnect() { p.b.unbindAll() }

func (p *remoteWatcher) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.InputChangeSelector) {
			p.bindNode(n)
		}
	}
}

func (p *remoteWatcher) bindNode(n api.Node) {
	p.b.bind(n, EventChange, func(ev *api.Event) {
		if ev.Canceled() || isDisabled(n) {
			return
		}
		n.Dispatch(&api.Event{Type: EventAkChange})
	})
}
