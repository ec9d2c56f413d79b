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

package engine

import (
	"github.com/valyala/bytebufferpool"

	"github.com/attrkit/attrkit/api"
)

// AppendToQuerySelector extends the matching rule registered under key.
// The new selector (and exclusion, when given) is appended to the existing
// string with a ", " separator; matching stays additive, never replaced.
// An unknown key is silently ignored: behavior names from newer embedders
// must not break older engines.
func (app *Application) AppendToQuerySelector(key string, entry SelectorEntry) {
	current, ok := app.selectors.Get(key)
	if !ok {
		internalLogger.debugf("appendToQuerySelector: unknown key %q ignored", key)
		return
	}
	current.Selector = appendSelector(current.Selector, entry.Selector)
	current.Exclude = appendSelector(current.Exclude, entry.Exclude)
	app.selectors.Set(key, current)
}

// appendSelector joins two selector lists. Appending is not deduplicating:
// registering the same fragment twice matches twice, harmlessly.
func appendSelector(existing, addition string) string {
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(existing)
	_, _ = buf.WriteString(", ")
	_, _ = buf.WriteString(addition)
	return buf.String()
}

// RegisterMimeTypes merges the given shortcut-to-header entries over the
// current mime map. Later registrations win for the same shortcut, unlike
// selectors which are additive. Returns the full resulting map.
func (app *Application) RegisterMimeTypes(list []MimeType) map[string]string {
	for _, mt := range list {
		app.mimeTypes.Set(mt.Shortcut, mt.Header)
	}
	return app.MimeTypes()
}

// RegisterConfirm wires a custom confirmation attribute: links and buttons
// carrying it become click-intercepted, and fn joins the confirm-callback
// sequence the confirm capability runs in registration order.
func (app *Application) RegisterConfirm(attribute string, fn api.ConfirmFunc) {
	app.AppendToQuerySelector(LinkClickSelector, SelectorEntry{Selector: "a[" + attribute + "]"})
	app.AppendToQuerySelector(ButtonClickSelector, SelectorEntry{Selector: "button[" + attribute + "]"})
	app.confirmMu.Lock()
	app.confirms = append(app.confirms, fn)
	app.confirmMu.Unlock()
}

// ConfirmCallbacks returns the registered confirm callbacks in
// registration order. The confirm capability consumes them; appending via
// RegisterConfirm is the only supported mutation.
func (app *Application) ConfirmCallbacks() []api.ConfirmFunc {
	app.confirmMu.Lock()
	defer app.confirmMu.Unlock()
	out := make([]api.ConfirmFunc, len(app.confirms))
	copy(out, app.confirms)
	return out
}

// QuerySelectors returns a snapshot of the selector registry.
func (app *Application) QuerySelectors() map[string]SelectorEntry {
	return app.selectors.Items()
}

// MimeTypes returns a snapshot of the mime map.
func (app *Application) MimeTypes() map[string]string {
	return app.mimeTypes.Items()
}

// SelectorEntry returns the matching rule registered under key.
func (app *Application) SelectorEntry(key string) (SelectorEntry, bool) {
	return app.selectors.Get(key)
}

// queryMatching resolves the selector registered under key against the
// document, honoring the entry's exclusion selector.
func (app *Application) queryMatching(key string) []api.Node {
	entry, ok := app.selectors.Get(key)
	if !ok || entry.Selector == "" {
		return nil
	}
	nodes := app.doc.QuerySelectorAll(entry.Selector)
	if entry.Exclude == "" {
		return nodes
	}
	kept := nodes[:0]
	for _, n := range nodes {
		if !n.Matches(entry.Exclude) {
			kept = append(kept, n)
		}
	}
	return kept
}
