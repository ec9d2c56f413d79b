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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics carries the engine's instrumentation. Pass a Registerer to
// expose them; a nil Registerer keeps the collectors local (tests read
// them directly).
type Metrics struct {
	TicksScheduled  prometheus.Counter
	TicksExecuted   prometheus.Counter
	NodesDispatched prometheus.Counter
	Connects        prometheus.Counter
	Disconnects     prometheus.Counter
}

// NewMetrics builds the engine collectors and registers them when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TicksScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attrkit_ticks_scheduled_total",
			Help: "Mutation dispatch ticks scheduled.",
		}),
		TicksExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attrkit_ticks_executed_total",
			Help: "Mutation dispatch ticks executed.",
		}),
		NodesDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attrkit_nodes_dispatched_total",
			Help: "Nodes handed to capability observer callbacks.",
		}),
		Connects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attrkit_connects_total",
			Help: "Connect passes performed.",
		}),
		Disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attrkit_disconnects_total",
			Help: "Disconnect passes performed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.TicksScheduled, m.TicksExecuted, m.NodesDispatched, m.Connects, m.Disconnects)
	}
	return m
}

// registerQueueDepth exposes the scheduler backlog as a gauge. Called once
// per Application when a Registerer was supplied.
func registerQueueDepth(reg prometheus.Registerer, s *scheduler) {
	if reg == nil {
		return
	}
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "attrkit_tick_queue_depth",
		Help: "Pending mutation dispatch ticks.",
	}, func() float64 {
		return float64(s.depth())
	}))
}
