package adapter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
	"github.com/attrkit/attrkit/internal/dom"
)

func TestHealthHandlerLiveness(t *testing.T) {
	doc := dom.NewDocument()
	app := engine.New(doc, dom.NewObserver(doc))
	defer app.Close()

	h := NewHealthHandler(app)
	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandlerReadinessTracksConnection(t *testing.T) {
	doc := dom.NewDocument()
	app := engine.New(doc, dom.NewObserver(doc))
	defer app.Close()
	h := NewHealthHandler(app)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "disconnected engine is not ready")

	app.Start(engine.Config{})
	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// flakyObserver fails the first n attach attempts.
type flakyObserver struct {
	failures    int
	attempts    int
	disconnects int
}

func (f *flakyObserver) Observe(cb func([]api.MutationRecord)) error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("attach refused")
	}
	return nil
}

func (f *flakyObserver) Disconnect() { f.disconnects++ }

func TestResilientObserverRetries(t *testing.T) {
	inner := &flakyObserver{failures: 2}
	obs := NewResilientObserver(inner, 5, time.Millisecond)
	require.NoError(t, obs.Observe(func([]api.MutationRecord) {}))
	assert.Equal(t, 3, inner.attempts)

	obs.Disconnect()
	assert.Equal(t, 1, inner.disconnects)
}

func TestResilientObserverGivesUp(t *testing.T) {
	inner := &flakyObserver{failures: 10}
	obs := NewResilientObserver(inner, 2, time.Millisecond)
	require.Error(t, obs.Observe(func([]api.MutationRecord) {}))
	assert.Equal(t, 3, inner.attempts, "initial attempt plus two retries")
}

func TestRecorderLineFormat(t *testing.T) {
	var sb strings.Builder
	rec := NewRecorder(&sb)
	rec.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	rec.Record("mutation", map[string]string{"nodes": "2", "batch": "7"})
	assert.Equal(t, "2026-03-14T09:26:53Z mutation batch=7 nodes=2\n", sb.String())
}

func TestAuditCapabilityRecordsLifecycle(t *testing.T) {
	var sb strings.Builder
	rec := NewRecorder(&sb)
	doc := dom.NewDocument()
	app := engine.New(doc, dom.NewObserver(doc))
	defer app.Close()

	app.Start(engine.Config{Plugins: []api.Capability{AuditCapability(rec)}})
	app.Stop()

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " initialize")
	assert.Contains(t, lines[1], " connect")
	assert.Contains(t, lines[2], " disconnect")
}

// countingCapability tallies hook calls through the instrument decorator.
type countingCapability struct {
	api.NopCapability
	observed int
}

func (c *countingCapability) ObserverCallback([]api.Node) { c.observed++ }

func TestInstrumentIsTransparent(t *testing.T) {
	inner := &countingCapability{}
	meter := metricnoop.NewMeterProvider().Meter("test")
	tracer := tracenoop.NewTracerProvider().Tracer("test")

	wrapped, err := Instrument(inner, "counting", meter, tracer)
	require.NoError(t, err)

	wrapped.Initialize()
	wrapped.Connect()
	wrapped.ObserverCallback(nil)
	wrapped.Disconnect()
	assert.Equal(t, 1, inner.observed)
}
