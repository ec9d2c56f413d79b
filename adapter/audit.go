package adapter

import (
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/attrkit/attrkit/api"
)

// Recorder writes one line per audited event, `RFC3339 event k=v ...`,
// details sorted by key so output is diffable.
type Recorder struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewRecorder builds a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, now: time.Now}
}

// Record formats and writes one audit event. Write errors are swallowed:
// auditing must never break the engine.
func (r *Recorder) Record(event string, details map[string]string) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(r.now().UTC().Format(time.RFC3339))
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(event)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(k)
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(details[k])
	}
	_ = buf.WriteByte('\n')
	r.mu.Lock()
	_, _ = r.w.Write(buf.Bytes())
	r.mu.Unlock()
}

// auditCapability records lifecycle and dispatch activity. Register it as
// an extension plugin; it runs after the core set like any other.
type auditCapability struct {
	rec *Recorder
}

// AuditCapability builds a capability that writes the engine's lifecycle
// transitions and mutation batches to rec.
func AuditCapability(rec *Recorder) api.Capability {
	return &auditCapability{rec: rec}
}

func (a *auditCapability) Initialize() { a.rec.Record("initialize", nil) }
func (a *auditCapability) Connect()    { a.rec.Record("connect", nil) }
func (a *auditCapability) Disconnect() { a.rec.Record("disconnect", nil) }

func (a *auditCapability) ObserverCallback(nodes []api.Node) {
	a.rec.Record("mutation", map[string]string{"nodes": strconv.Itoa(len(nodes))})
}
