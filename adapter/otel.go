// Package adapter bridges attrkit to external systems: OpenTelemetry
// instrumentation, HTTP health endpoints, audit trails, and resilient
// observation sources.
package adapter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/attrkit/attrkit/api"
)

// instrumented decorates a capability with OTel spans and a hook counter.
// The decorator is transparent: hook panics pass through after the span
// records, matching the engine's propagate-don't-catch policy.
type instrumented struct {
	inner  api.Capability
	name   string
	tracer trace.Tracer
	hooks  metric.Int64Counter
}

// Instrument wraps cap so every lifecycle and mutation hook produces a
// span named after the capability and increments an attrkit.hooks
// counter keyed by hook kind.
func Instrument(cap api.Capability, name string, meter metric.Meter, tracer trace.Tracer) (api.Capability, error) {
	hooks, err := meter.Int64Counter("attrkit.hooks",
		metric.WithDescription("Capability hook invocations."))
	if err != nil {
		return nil, err
	}
	return &instrumented{inner: cap, name: name, tracer: tracer, hooks: hooks}, nil
}

func (c *instrumented) Initialize() { c.run("initialize", func() { c.inner.Initialize() }) }
func (c *instrumented) Connect()    { c.run("connect", func() { c.inner.Connect() }) }
func (c *instrumented) Disconnect() { c.run("disconnect", func() { c.inner.Disconnect() }) }

func (c *instrumented) ObserverCallback(nodes []api.Node) {
	c.run("observer_callback", func() { c.inner.ObserverCallback(nodes) })
}

func (c *instrumented) run(hook string, fn func()) {
	ctx, span := c.tracer.Start(context.Background(), c.name+"."+hook)
	defer span.End()
	c.hooks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("capability", c.name),
		attribute.String("hook", hook),
	))
	fn()
}
