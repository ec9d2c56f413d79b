/*
 * Copyright 2026 The attrkit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package engine implements the attrkit lifecycle controller and mutation
// dispatch loop. An Application owns the connected flag, the ordered
// capability registry, the selector/mime/confirm registries, and the
// deferred dispatch scheduler. Concrete behavior lives in capabilities;
// the engine only propagates lifecycle and mutation events to them in a
// deterministic order.
package engine

import (
	"sync"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/attrkit/attrkit/api"
)

// Application is one engine instance. Create it with New, drive it with
// Start/Stop/Restart, and tear it down with Close. Instances are
// independent; the ambient default lives in the root package.
type Application struct {
	doc      api.Document
	observer api.Observer
	tokens   api.TokenSource

	// mu guards lifecycle transitions and the capability registry.
	// Capability hooks run with mu held: everything a hook may call on
	// the Application (registries, token lookup, Enqueue) stays off mu.
	mu          sync.Mutex
	core        []api.Capability
	extensions  []api.Capability
	plugins     []api.Capability
	initialized map[api.Capability]bool
	connected   bool
	started     bool

	maskLinkMethods atomic.Bool
	selectors       cmap.ConcurrentMap[string, SelectorEntry]
	mimeTypes       cmap.ConcurrentMap[string, string]

	confirmMu sync.Mutex
	confirms  []api.ConfirmFunc

	sched      *scheduler
	metrics    *Metrics
	offRestore func()
}

// Option configures an Application at construction.
type Option func(*Application)

// WithTokenSource installs the anti-forgery token collaborator.
func WithTokenSource(ts api.TokenSource) Option {
	return func(app *Application) { app.tokens = ts }
}

// WithRegisterer exposes the engine metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(app *Application) {
		app.metrics = NewMetrics(reg)
		registerQueueDepth(reg, app.sched)
	}
}

// New builds a disconnected Application observing doc through obs, with
// the default selector and mime configuration installed. The core
// capability set is wired by UseCore before the first Start; the root
// package's constructor does this for the stock set.
func New(doc api.Document, obs api.Observer, opts ...Option) *Application {
	app := &Application{
		doc:         doc,
		observer:    obs,
		initialized: make(map[api.Capability]bool),
		selectors:   cmap.New[SelectorEntry](),
		mimeTypes:   cmap.New[string](),
		sched:       newScheduler(),
	}
	for k, v := range defaultQuerySelectors() {
		app.selectors.Set(k, v)
	}
	for k, v := range defaultMimeTypes() {
		app.mimeTypes.Set(k, v)
	}
	app.metrics = NewMetrics(nil)
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// UseCore installs the fixed, priority-ordered core capability list. Core
// membership cannot change once the Application has started; a late call
// is ignored with a warning.
func (app *Application) UseCore(caps ...api.Capability) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.started {
		internalLogger.warnf("UseCore ignored: application already started")
		return
	}
	app.core = caps
}

// Start merges cfg over the current configuration, recomputes the
// capability registry as core ++ extensions, and connects. Calling Start
// while connected merges configuration but is otherwise a no-op; the
// second call is observable only through the unchanged connected flag.
// Initialize runs at most once per capability instance, before its first
// Connect.
func (app *Application) Start(cfg Config) *Application {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.applyConfig(cfg)
	if app.connected {
		return app
	}
	app.started = true
	for _, p := range app.plugins {
		if !app.initialized[p] {
			p.Initialize()
			app.initialized[p] = true
		}
	}
	app.connect()
	return app
}

// Stop disconnects. Calling Stop while already disconnected is a no-op.
func (app *Application) Stop() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if !app.connected {
		return
	}
	app.disconnect()
}

// Restart performs a full disconnect+connect cycle unconditionally,
// regardless of the current state. Use it after changing configuration or
// the extension list; the registry recomputed by the last Start applies.
// A Restart from the disconnected state still runs one Disconnect pass on
// every capability before connecting.
func (app *Application) Restart() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.started = true
	app.plugins = app.registry()
	app.disconnect()
	for _, p := range app.plugins {
		if !app.initialized[p] {
			p.Initialize()
			app.initialized[p] = true
		}
	}
	app.connect()
}

// Close releases the engine's event loop. Pending deferred ticks are
// dropped, unlike Stop which lets them run. The Application must not be
// used afterwards.
func (app *Application) Close() {
	app.Stop()
	app.sched.close()
}

// Connected reports the lifecycle flag.
func (app *Application) Connected() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.connected
}

// Document returns the observed tree.
func (app *Application) Document() api.Document { return app.doc }

// MaskLinkMethods reports the current configuration flag.
func (app *Application) MaskLinkMethods() bool {
	return app.maskLinkMethods.Load()
}

// CSRFToken returns the current anti-forgery token, or "" when no token
// source is installed or no token exists.
func (app *Application) CSRFToken() string {
	if app.tokens == nil {
		return ""
	}
	t, _ := app.tokens.Token()
	return t
}

// CSRFParam returns the form parameter name the token travels under.
func (app *Application) CSRFParam() string {
	if app.tokens == nil {
		return ""
	}
	p, _ := app.tokens.Param()
	return p
}

// Enqueue schedules fn on the engine's event loop. Capabilities doing
// asynchronous work re-enter the tree through here so nodes are only
// touched from the loop.
func (app *Application) Enqueue(fn func()) {
	app.sched.enqueue(fn)
}

// Plugins returns the current registry, core first, then extensions, in
// invocation order.
func (app *Application) Plugins() []api.Capability {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.registry()
}

// applyConfig merges a partial Config. Callers hold app.mu.
func (app *Application) applyConfig(cfg Config) {
	if cfg.MaskLinkMethods {
		app.maskLinkMethods.Store(true)
	}
	for k, v := range cfg.QuerySelectors {
		app.selectors.Set(k, v)
	}
	for k, v := range cfg.MimeTypes {
		app.mimeTypes.Set(k, v)
	}
	if cfg.Plugins != nil {
		app.extensions = cfg.Plugins
	}
	app.plugins = app.registry()
}

// registry concatenates core and extension capabilities. Order is a
// published contract: core runs first, in its fixed priority order, then
// extensions in caller order. No deduplication: a capability supplied
// twice runs twice. Callers hold app.mu.
func (app *Application) registry() []api.Capability {
	all := make([]api.Capability, 0, len(app.core)+len(app.extensions))
	all = append(all, app.core...)
	all = append(all, app.extensions...)
	return all
}

// connect performs the connect protocol: re-enable sweep, restore-signal
// subscription, capability Connect in registry order, observer attach,
// connected flag. The observer attaches after capability connects so that
// connect-time attribute writes do not fan back out through dispatch.
// Callers hold app.mu.
func (app *Application) connect() {
	app.reenableDisabledElements()
	app.offRestore = app.doc.OnRestore(app.reenableDisabledElements)
	for _, p := range app.plugins {
		p.Connect()
	}
	if err := app.observer.Observe(app.handleMutations); err != nil {
		internalLogger.errorf("connect: observer attach failed: %v", err)
	}
	app.connected = true
	app.metrics.Connects.Inc()
	internalLogger.infof("connected, %d capabilities", len(app.plugins))
}

// disconnect performs the disconnect protocol: restore-signal and
// observer teardown, capability Disconnect in registry order (forward,
// same as connect; hooks are expected to be order-independent on
// teardown), connected flag cleared. Already-scheduled ticks still run.
// Callers hold app.mu.
func (app *Application) disconnect() {
	if app.offRestore != nil {
		app.offRestore()
		app.offRestore = nil
	}
	app.observer.Disconnect()
	for _, p := range app.plugins {
		p.Disconnect()
	}
	app.connected = false
	app.metrics.Disconnects.Inc()
	internalLogger.infof("disconnected")
}

// reenableDisabledElements sweeps the two fixed selector categories that
// may hold elements left disabled by a previous session (or by a cached
// page being restored) and strips their disabled state. Idempotent.
func (app *Application) reenableDisabledElements() {
	for _, key := range []string{FormEnableSelector, LinkDisableSelector} {
		for _, n := range app.queryMatching(key) {
			n.RemoveAttr("disabled")
			n.RemoveAttr("data-ak-disabled")
		}
	}
}
