package adapter

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/attrkit/attrkit/api"
)

// ResilientObserver wraps an observation source whose attach can fail
// transiently and retries it with exponential backoff. Disconnect passes
// straight through.
type ResilientObserver struct {
	inner      api.Observer
	maxRetries uint64
	interval   time.Duration
}

var _ api.Observer = (*ResilientObserver)(nil)

// NewResilientObserver wraps inner with up to maxRetries re-attach
// attempts starting at interval.
func NewResilientObserver(inner api.Observer, maxRetries uint64, interval time.Duration) *ResilientObserver {
	return &ResilientObserver{inner: inner, maxRetries: maxRetries, interval: interval}
}

// Observe attaches, retrying transient failures.
func (r *ResilientObserver) Observe(cb func([]api.MutationRecord)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.interval
	return backoff.Retry(func() error {
		return r.inner.Observe(cb)
	}, backoff.WithMaxRetries(b, r.maxRetries))
}

// Disconnect stops the underlying observer.
func (r *ResilientObserver) Disconnect() {
	r.inner.Disconnect()
}
