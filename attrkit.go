// Package attrkit turns declarative node attributes into live behavior.
// It wires the stock core capability set onto an engine.Application and
// keeps a process-wide default instance for embedding convenience;
// everything here is a thin layer over the engine and plugins packages,
// and hosts that want several independent instances use those directly.
package attrkit

import (
	"sync"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
	"github.com/attrkit/attrkit/plugins"
)

// Option configures the composite constructor.
type Option func(*options)

type options struct {
	sender     plugins.Sender
	engineOpts []engine.Option
}

// WithSender installs the transport for dispatched submissions.
func WithSender(s plugins.Sender) Option {
	return func(o *options) { o.sender = s }
}

// WithEngineOptions forwards options to the underlying engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, opts...) }
}

// New builds an Application with the default core capability set wired
// and the default selector and mime configuration installed. The result
// is disconnected; drive it with Start.
func New(doc api.Document, obs api.Observer, opts ...Option) *engine.Application {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	app := engine.New(doc, obs, o.engineOpts...)
	app.UseCore(plugins.Core(app, o.sender)...)
	return app
}

var (
	defaultMu  sync.Mutex
	defaultApp *engine.Application
)

// Install makes app the ambient default instance. Last writer wins; an
// earlier default keeps its own connected state but stops being "the"
// instance.
func Install(app *engine.Application) {
	defaultMu.Lock()
	defaultApp = app
	defaultMu.Unlock()
}

// Current returns the ambient default instance, or nil when none is
// installed.
func Current() *engine.Application {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultApp
}

// Start delegates to the ambient default instance.
func Start(cfg engine.Config) *engine.Application {
	if app := Current(); app != nil {
		return app.Start(cfg)
	}
	return nil
}

// Stop delegates to the ambient default instance.
func Stop() {
	if app := Current(); app != nil {
		app.Stop()
	}
}

// Restart delegates to the ambient default instance.
func Restart() {
	if app := Current(); app != nil {
		app.Restart()
	}
}
