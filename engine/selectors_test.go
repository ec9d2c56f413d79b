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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/internal/dom"
)

func newRegistryApp(t *testing.T) *Application {
	t.Helper()
	doc := dom.NewDocument()
	app := New(doc, dom.NewObserver(doc))
	t.Cleanup(app.Close)
	return app
}

func TestAppendToQuerySelectorIsAdditive(t *testing.T) {
	app := newRegistryApp(t)
	before, ok := app.SelectorEntry(FormSubmitSelector)
	require.True(t, ok)

	app.AppendToQuerySelector(FormSubmitSelector, SelectorEntry{Selector: `form[data-live]`})
	entry, _ := app.SelectorEntry(FormSubmitSelector)
	assert.Equal(t, before.Selector+", form[data-live]", entry.Selector)

	// Appending never deduplicates.
	app.AppendToQuerySelector(FormSubmitSelector, SelectorEntry{Selector: `form[data-live]`})
	entry, _ = app.SelectorEntry(FormSubmitSelector)
	assert.Equal(t, 2, strings.Count(entry.Selector, "form[data-live]"))
}

func TestAppendToQuerySelectorExtendsExclusion(t *testing.T) {
	app := newRegistryApp(t)
	app.AppendToQuerySelector(ButtonClickSelector, SelectorEntry{
		Selector: `button[data-live]`,
		Exclude:  `button[data-native]`,
	})
	entry, _ := app.SelectorEntry(ButtonClickSelector)
	assert.True(t, strings.HasSuffix(entry.Selector, ", button[data-live]"))
	assert.Equal(t, "button[form], button[data-native]", entry.Exclude)
}

func TestAppendToQuerySelectorUnknownKeyIgnored(t *testing.T) {
	app := newRegistryApp(t)
	keys := len(app.QuerySelectors())
	app.AppendToQuerySelector("turboFrameSelector", SelectorEntry{Selector: `turbo-frame`})
	assert.Len(t, app.QuerySelectors(), keys)
	_, ok := app.SelectorEntry("turboFrameSelector")
	assert.False(t, ok)
}

func TestRegisterMimeTypesOverrides(t *testing.T) {
	app := newRegistryApp(t)
	got := app.RegisterMimeTypes([]MimeType{
		{Shortcut: "json", Header: "application/vnd.api+json"},
		{Shortcut: "csv", Header: "text/csv"},
	})
	assert.Equal(t, "application/vnd.api+json", got["json"])
	assert.Equal(t, "text/csv", got["csv"])
	// Later registration wins for the same shortcut.
	got = app.RegisterMimeTypes([]MimeType{{Shortcut: "csv", Header: "application/csv"}})
	assert.Equal(t, "application/csv", got["csv"])
}

func TestRegisterConfirmExtendsClickSelectors(t *testing.T) {
	app := newRegistryApp(t)
	called := false
	app.RegisterConfirm("data-really-sure", func(message string, node api.Node) bool {
		called = true
		return false
	})

	link, _ := app.SelectorEntry(LinkClickSelector)
	button, _ := app.SelectorEntry(ButtonClickSelector)
	assert.True(t, strings.HasSuffix(link.Selector, ", a[data-really-sure]"))
	assert.True(t, strings.HasSuffix(button.Selector, ", button[data-really-sure]"))

	cbs := app.ConfirmCallbacks()
	require.Len(t, cbs, 1)
	assert.False(t, cbs[0]("sure?", nil))
	assert.True(t, called)
}

func TestConfirmCallbacksReturnsCopy(t *testing.T) {
	app := newRegistryApp(t)
	app.RegisterConfirm("data-check", func(string, api.Node) bool { return true })
	cbs := app.ConfirmCallbacks()
	cbs[0] = nil
	require.NotNil(t, app.ConfirmCallbacks()[0])
}

func TestQueryMatchingHonorsExclusion(t *testing.T) {
	doc := dom.NewDocument()
	app := New(doc, dom.NewObserver(doc))
	defer app.Close()

	plain := doc.CreateElement("button")
	plain.SetAttr("data-remote", "true")
	owned := doc.CreateElement("button")
	owned.SetAttr("data-remote", "true")
	owned.SetAttr("form", "checkout")
	doc.RootElement().AppendBatch(plain, owned)

	nodes := app.queryMatching(ButtonClickSelector)
	require.Len(t, nodes, 1)
	assert.Same(t, plain, nodes[0].(*dom.Element))
}
