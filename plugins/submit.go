package plugins

import (
	"github.com/panjf2000/ants/v2"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
)

// Submission is one outgoing request built from a form's declarative
// attributes. Transport is outside the engine: a Sender performs it.
type Submission struct {
	Method    string
	URL       string
	Accept    string
	CSRFToken string
	CSRFParam string
}

// Sender performs a submission. Implementations may block; the dispatcher
// calls them from its worker pool, never from the event loop.
type Sender interface {
	Send(s Submission) (location string, err error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(s Submission) (string, error)

func (f SenderFunc) Send(s Submission) (string, error) { return f(s) }

const submitPoolSize = 8

// formSubmitDispatcher converts submit events on remote forms into
// Submissions executed on a worker pool. Completion re-enters the tree
// through the engine event loop as an attr:complete event, so the worker
// never touches nodes itself. It runs last among the event-bound core
// capabilities so it observes post-confirm, post-disable element state.
type formSubmitDispatcher struct {
	api.NopCapability
	host   Host
	sender Sender
	b      *nodeBinder
	pool   *ants.Pool
}

// FormSubmitDispatcher builds the submission dispatcher. A nil sender
// short-circuits: submissions complete immediately with no location.
func FormSubmitDispatcher(h Host, sender Sender) api.Capability {
	return &formSubmitDispatcher{
		host:   h,
		sender: sender,
		b:      newNodeBinder("data-ak-submit-bound"),
	}
}

// Initialize creates the worker pool. Runs once per process lifetime.
func (p *formSubmitDispatcher) Initialize() {
	pool, err := ants.NewPool(submitPoolSize)
	if err != nil {
		// ants only rejects nonsensical sizes; treat as fatal misuse.
		panic(err)
	}
	p.pool = pool
}

func (p *formSubmitDispatcher) Connect() {
	for _, n := range queryEntry(p.host, engine.FormSubmitSelector) {
		p.bindNode(n)
	}
}

func (p *formSubmitDispatcher) Disconnect() { p.b.unbindAll() }

func (p *formSubmitDispatcher) ObserverCallback(nodes []api.Node) {
	for _, n := range nodes {
		if matchesEntry(p.host, n, engine.FormSubmitSelector) {
			p.bindNode(n)
		}
	}
}

func (p *formSubmitDispatcher) bindNode(n api.Node) {
	p.b.bind(n, EventSubmit, func(ev *api.Event) {
		if ev.Canceled() {
			return
		}
		ev.Cancel() // the engine owns this submission now
		sub := p.buildSubmission(n)
		if err := p.pool.Submit(func() { p.perform(n, sub) }); err != nil {
			// Pool released or saturated beyond its blocking capacity.
			ev.Detail = map[string]string{"error": err.Error()}
		}
	})
}

func (p *formSubmitDispatcher) buildSubmission(n api.Node) Submission {
	sub := Submission{Method: "GET", Accept: "*/*"}
	if m, ok := n.Attr(AttrPendingMethod); ok && m != "" {
		sub.Method = m
	} else if m, ok := n.Attr("method"); ok && m != "" {
		sub.Method = m
	}
	sub.URL, _ = n.Attr("action")
	if shortcut, ok := n.Attr("data-type"); ok {
		if header, found := p.host.MimeTypes()[shortcut]; found {
			sub.Accept = header
		}
	}
	sub.CSRFToken, _ = n.Attr(AttrCSRFToken)
	sub.CSRFParam, _ = n.Attr(AttrCSRFParam)
	return sub
}

func (p *formSubmitDispatcher) perform(n api.Node, sub Submission) {
	var location string
	var err error
	if p.sender != nil {
		location, err = p.sender.Send(sub)
	}
	detail := map[string]string{"location": location}
	if err != nil {
		detail["error"] = err.Error()
	}
	p.host.Enqueue(func() {
		n.Dispatch(&api.Event{Type: EventComplete, Detail: detail})
	})
}
