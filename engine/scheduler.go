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
	queuepkg "github.com/Workiva/go-datastructures/queue"
)

// scheduler is the engine's event loop: an unbounded FIFO drained by a
// single goroutine. Deferring a task yields control back to the caller
// immediately, so mutation processing never runs inside the observation
// turn that produced it. One drain goroutine keeps ticks serialized and in
// scheduling order.
type scheduler struct {
	q *queuepkg.Queue
}

func newScheduler() *scheduler {
	s := &scheduler{q: queuepkg.New(64)}
	go s.loop()
	return s
}

// enqueue schedules fn for the next free turn of the drain goroutine.
// Tasks scheduled before close still run; tasks scheduled after close are
// dropped with a warning.
func (s *scheduler) enqueue(fn func()) {
	if err := s.q.Put(fn); err != nil {
		internalLogger.warnf("scheduler: tick dropped after close: %v", err)
	}
}

func (s *scheduler) loop() {
	for {
		items, err := s.q.Get(1)
		if err != nil {
			// Disposed.
			return
		}
		for _, it := range items {
			it.(func())()
		}
	}
}

// depth reports the number of pending ticks.
func (s *scheduler) depth() int64 {
	return s.q.Len()
}

// close disposes the queue and stops the drain goroutine. Pending ticks
// are dropped; this is final teardown, not Stop.
func (s *scheduler) close() {
	s.q.Dispose()
}
