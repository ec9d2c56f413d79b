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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsTasksInOrder(t *testing.T) {
	s := newScheduler()
	defer s.close()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		s.enqueue(func() { got = append(got, i) })
	}
	s.enqueue(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("drain goroutine stalled")
	}
	require.Len(t, got, 10)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestSchedulerDropsTasksAfterClose(t *testing.T) {
	s := newScheduler()
	s.close()
	ran := make(chan struct{}, 1)
	s.enqueue(func() { ran <- struct{}{} })
	select {
	case <-ran:
		t.Fatal("task ran after close")
	case <-time.After(50 * time.Millisecond):
	}
}
