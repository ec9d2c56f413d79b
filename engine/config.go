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

import "github.com/attrkit/attrkit/api"

// SelectorEntry is one matching rule of the selector registry: a CSS-style
// selector plus an optional exclusion selector applied on top of it.
type SelectorEntry struct {
	Selector string
	Exclude  string
}

// MimeType maps a shortcut name to a full Accept-header value.
type MimeType struct {
	Shortcut string
	Header   string
}

// Config is the partial configuration accepted by Start. Zero-value fields
// keep the current setting; the merge is shallow, at the top level only.
type Config struct {
	// MaskLinkMethods hides destructive link verbs from crawlers; the
	// methodMask capability reads it.
	MaskLinkMethods bool
	// QuerySelectors replaces matching rules wholesale per key. Runtime
	// extension normally goes through AppendToQuerySelector instead.
	QuerySelectors map[string]SelectorEntry
	// MimeTypes entries are merged over the current mime map
	// (last-write-wins per shortcut).
	MimeTypes map[string]string
	// Plugins is the extension capability list, appended after the core
	// set. Replaced as a whole on every Start that supplies it.
	Plugins []api.Capability
}

// Default selector registry keys. Behavior capabilities look their
// matching rules up under these names; hosts extend them at runtime via
// AppendToQuerySelector.
const (
	LinkClickSelector      = "linkClickSelector"
	ButtonClickSelector    = "buttonClickSelector"
	InputChangeSelector    = "inputChangeSelector"
	FormSubmitSelector     = "formSubmitSelector"
	FormInputClickSelector = "formInputClickSelector"
	FormDisableSelector    = "formDisableSelector"
	FormEnableSelector     = "formEnableSelector"
	LinkDisableSelector    = "linkDisableSelector"
	ButtonDisableSelector  = "buttonDisableSelector"
)

func defaultQuerySelectors() map[string]SelectorEntry {
	return map[string]SelectorEntry{
		LinkClickSelector: {
			Selector: `a[data-confirm], a[data-method], a[data-masked-method], a[data-remote]:not([disabled]), a[data-disable-with], a[data-disable]`,
		},
		ButtonClickSelector: {
			Selector: `button[data-remote]:not([form]), button[data-confirm]:not([form])`,
			Exclude:  `button[form]`,
		},
		InputChangeSelector: {
			Selector: `select[data-remote], input[data-remote], textarea[data-remote]`,
		},
		FormSubmitSelector: {
			Selector: `form[data-remote]`,
		},
		FormInputClickSelector: {
			Selector: `input[type="submit"][data-remote], button[type="submit"][data-remote]`,
		},
		FormDisableSelector: {
			Selector: `input[data-disable-with]:not([disabled]), button[data-disable-with]:not([disabled]), textarea[data-disable-with]:not([disabled]), input[data-disable]:not([disabled]), button[data-disable]:not([disabled]), textarea[data-disable]:not([disabled])`,
		},
		FormEnableSelector: {
			Selector: `input[data-disable-with][disabled], button[data-disable-with][disabled], textarea[data-disable-with][disabled], input[data-disable][disabled], button[data-disable][disabled], textarea[data-disable][disabled]`,
		},
		LinkDisableSelector: {
			Selector: `a[data-disable-with], a[data-disable]`,
		},
		ButtonDisableSelector: {
			Selector: `button[data-remote][data-disable-with], button[data-remote][data-disable]`,
		},
	}
}

func defaultMimeTypes() map[string]string {
	return map[string]string{
		"*":    "*/*",
		"any":  "*/*",
		"text": "text/plain",
		"html": "text/html, application/xhtml+xml",
		"xml":  "application/xml, text/xml",
		"json": "application/json, text/javascript",
	}
}
