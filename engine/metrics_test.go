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

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrkit/attrkit/internal/dom"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestWithRegistererExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	doc := dom.NewDocument()
	app := New(doc, dom.NewObserver(doc), WithRegisterer(reg))
	defer app.Close()

	app.Start(Config{})
	app.Stop()

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]*dto.MetricFamily{}
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}
	require.Contains(t, byName, "attrkit_connects_total")
	require.Contains(t, byName, "attrkit_disconnects_total")
	require.Contains(t, byName, "attrkit_tick_queue_depth")
	assert.Equal(t, 1.0, byName["attrkit_connects_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, byName["attrkit_disconnects_total"].GetMetric()[0].GetCounter().GetValue())
}

func TestLifecycleCounters(t *testing.T) {
	doc := dom.NewDocument()
	app := New(doc, dom.NewObserver(doc))
	defer app.Close()

	app.Start(Config{})
	app.Restart()
	app.Stop()

	assert.Equal(t, 2.0, counterValue(t, app.metrics.Connects))
	assert.Equal(t, 2.0, counterValue(t, app.metrics.Disconnects))
}
