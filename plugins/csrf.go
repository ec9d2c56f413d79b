package plugins

import (
	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// csrf stamps the host's anti-forgery token onto remote forms so the
// submission dispatcher can attach it to outgoing requests. Re-stamping
// an already-stamped form writes the same values and produces no further
// mutation records.
type csrf struct {
	api.NopCapability
	host Host
}

// CSRF builds the token-stamping capability.
func CSRF(h Host) api.Capability { return &csrf{host: h} }

func (p *csrf) Connect() {
	for _, n := range queryEntry(p.host, engine.FormSubmitSelector) {
		p.stamp(n)
	}
}

func (p *csrf) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.FormSubmitSelector) {
			p.stamp(n)
		}
	}
}

func (p *csrf) stamp(n api.Node) {
	token := p.host.CSRFToken()
	if token == "" {
		return
	}
	n.SetAttr(AttrCSRFToken, token)
	if param := p.host.CSRFParam(); param != "" {
		n.SetAttr(AttrCSRFParam, param)
	}
}
