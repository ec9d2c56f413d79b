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
	"github.com/attrkit/attrkit/api"
)

// handleMutations is the observer callback: it normalizes each mutation
// record into its affected-node list and schedules one deferred tick per
// record. Nothing runs inside the observation turn itself; the tick
// executes on the event loop after this callback returns, so mutation
// reactions never add latency to the change that produced them.
//
// Record i's tick is scheduled before record i+1's and the single drain
// goroutine executes them in that order, but each tick is its own task:
// ordering across records is eventual, not atomic.
//
// A tick scheduled before Stop still runs after it; callbacks do not
// re-check the connected flag.
func (app *Application) handleMutations(records []api.MutationRecord) {
	for _, rec := range records {
		nodes := affectedNodes(rec)
		if len(nodes) == 0 {
			continue
		}
		plugins := app.snapshotPlugins()
		app.metrics.TicksScheduled.Inc()
		app.sched.enqueue(func() {
			app.metrics.TicksExecuted.Inc()
			app.metrics.NodesDispatched.Add(float64(len(nodes)))
			for _, p := range plugins {
				p.ObserverCallback(nodes)
			}
		})
	}
}

// affectedNodes normalizes one record: an attribute change affects exactly
// its target; an insertion affects the added nodes as reported, without
// recursion or element filtering. Dropping text nodes is the plugins'
// business, not the dispatcher's.
func affectedNodes(rec api.MutationRecord) []api.Node {
	if rec.Type == api.MutationAttributes {
		if rec.Target == nil {
			return nil
		}
		return []api.Node{rec.Target}
	}
	return rec.AddedNodes
}

// snapshotPlugins captures the registry for one tick, so a Start that
// swaps extensions mid-flight never tears a running fan-out.
func (app *Application) snapshotPlugins() []api.Capability {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.plugins
}
