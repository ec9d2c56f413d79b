// Package api defines the public contracts for attrkit.
package api

// Capability is a behavior plugin. The engine drives every hook for every
// registered capability; a capability that has nothing to do for a hook
// embeds NopCapability and overrides only what it needs.
//
// Initialize runs once per capability instance, before its first Connect.
// Connect and Disconnect are always invoked pairwise and in registry order.
// ObserverCallback receives the affected nodes of one mutation record and
// runs on the engine's event loop while the engine is connected; it may
// still fire after Stop for ticks that were already scheduled. Side effects
// must be idempotent: a callback may itself mutate the tree and re-enter
// dispatch.
//
// Hook panics are not recovered by the engine and abort the remainder of
// the lifecycle pass that triggered them.
type Capability interface {
	Initialize()
	Connect()
	Disconnect()
	ObserverCallback(nodes []Node)
}

// NopCapability implements every Capability hook as a no-op. Embed it to
// implement only the hooks a plugin cares about.
type NopCapability struct{}

func (NopCapability) Initialize()             {}
func (NopCapability) Connect()                {}
func (NopCapability) Disconnect()             {}
func (NopCapability) ObserverCallback([]Node) {}

// ConfirmFunc decides whether a guarded interaction may proceed. The
// message is the element's confirmation text; node is the element the
// interaction targets. Returning false cancels the interaction.
type ConfirmFunc func(message string, node Node) bool
