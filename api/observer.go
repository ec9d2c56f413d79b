package api

// MutationType discriminates the two record kinds an Observer reports.
type MutationType int

const (
	// MutationAttributes records an attribute change on Target.
	MutationAttributes MutationType = iota
	// MutationChildList records insertion of AddedNodes under Target.
	MutationChildList
)

// MutationRecord is one observed change. For attribute records the
// affected set is the single target node; for child-list records it is
// AddedNodes exactly as reported, non-recursive and unfiltered (text and
// other non-element nodes included when the primitive reports them).
type MutationRecord struct {
	Type          MutationType
	Target        Node
	AddedNodes    []Node
	AttributeName string
}

// Observer is the subtree-observation primitive. Observe registers the
// callback and starts reporting; records are delivered synchronously on
// whatever goroutine performs the mutation, and the callback must not
// block. Disconnect stops reporting and must be safe to call when not
// observing.
type Observer interface {
	Observe(cb func(records []MutationRecord)) error
	Disconnect()
}
