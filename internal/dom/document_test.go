package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrkit/attrkit/api"
)

func collectRecords(t *testing.T, doc *Document) (*Observer, *[]api.MutationRecord) {
	t.Helper()
	obs := NewObserver(doc)
	var got []api.MutationRecord
	require.NoError(t, obs.Observe(func(records []api.MutationRecord) {
		got = append(got, records...)
	}))
	t.Cleanup(obs.Disconnect)
	return obs, &got
}

func TestObserveRequiresCallback(t *testing.T) {
	obs := NewObserver(NewDocument())
	assert.ErrorIs(t, obs.Observe(nil), ErrNilCallback)
}

func TestAttributeWritesProduceRecordsOnlyOnChange(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("a")
	doc.RootElement().Append(el)
	_, got := collectRecords(t, doc)

	el.SetAttr("data-method", "delete")
	el.SetAttr("data-method", "delete") // same value, no record
	el.RemoveAttr("data-method")
	el.RemoveAttr("data-method") // already absent, no record

	require.Len(t, *got, 2)
	for _, rec := range *got {
		assert.Equal(t, api.MutationAttributes, rec.Type)
		assert.Same(t, el, rec.Target.(*Element))
		assert.Equal(t, "data-method", rec.AttributeName)
	}
}

func TestDetachedMutationsProduceNoRecords(t *testing.T) {
	doc := NewDocument()
	_, got := collectRecords(t, doc)

	el := doc.CreateElement("a")
	el.SetAttr("data-method", "delete")
	child := doc.CreateElement("span")
	el.Append(child)
	assert.Empty(t, *got)

	// Attaching the subtree reports a single childList record for the
	// insertion point.
	doc.RootElement().Append(el)
	require.Len(t, *got, 1)
	assert.Equal(t, api.MutationChildList, (*got)[0].Type)
	require.Len(t, (*got)[0].AddedNodes, 1)
	assert.Same(t, el, (*got)[0].AddedNodes[0].(*Element))
}

func TestAppendBatchCoalesces(t *testing.T) {
	doc := NewDocument()
	_, got := collectRecords(t, doc)

	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	doc.RootElement().AppendBatch(a, b)

	require.Len(t, *got, 1)
	assert.Len(t, (*got)[0].AddedNodes, 2)
}

func TestDisconnectStopsDelivery(t *testing.T) {
	doc := NewDocument()
	obs, got := collectRecords(t, doc)
	obs.Disconnect()
	doc.RootElement().Append(doc.CreateElement("a"))
	assert.Empty(t, *got)
	// Disconnecting twice is harmless.
	obs.Disconnect()
}

func TestDispatchReportsCancellation(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("a")

	off := el.On("click", func(ev *api.Event) { ev.Cancel() })
	assert.False(t, el.Dispatch(&api.Event{Type: "click"}))

	off()
	assert.True(t, el.Dispatch(&api.Event{Type: "click"}))
}

func TestDispatchSetsTarget(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("a")
	var seen api.Node
	el.On("click", func(ev *api.Event) { seen = ev.Target })
	el.Dispatch(&api.Event{Type: "click"})
	assert.Same(t, el, seen.(*Element))
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("a")
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		el.On("click", func(*api.Event) { order = append(order, i) })
	}
	el.Dispatch(&api.Event{Type: "click"})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRestoreSignalSubscription(t *testing.T) {
	doc := NewDocument()
	calls := 0
	off := doc.OnRestore(func() { calls++ })
	doc.Restore()
	doc.Restore()
	off()
	doc.Restore()
	assert.Equal(t, 2, calls)
}
