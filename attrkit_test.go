package attrkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrkit/attrkit/api"
	"github.com/attrkit/attrkit/engine"
	"github.com/attrkit/attrkit/internal/dom"
)

func newApp(t *testing.T, opts ...Option) *engine.Application {
	t.Helper()
	doc := dom.NewDocument()
	app := New(doc, dom.NewObserver(doc), opts...)
	t.Cleanup(app.Close)
	return app
}

func TestNewWiresStockCapabilities(t *testing.T) {
	app := newApp(t)
	assert.Len(t, app.Plugins(), 11)
	assert.False(t, app.Connected())
}

func TestNewForwardsEngineOptions(t *testing.T) {
	app := newApp(t, WithEngineOptions(engine.WithTokenSource(api.StaticTokenSource{
		TokenValue: "tok",
		ParamName:  "p",
	})))
	assert.Equal(t, "tok", app.CSRFToken())
}

func TestAmbientDefaultInstance(t *testing.T) {
	t.Cleanup(func() { Install(nil) })

	assert.Nil(t, Current())
	assert.Nil(t, Start(engine.Config{}))
	Stop()    // no default installed, must not panic
	Restart() // same

	app := newApp(t)
	Install(app)
	require.Same(t, app, Current())

	Start(engine.Config{})
	assert.True(t, app.Connected())
	Restart()
	assert.True(t, app.Connected())
	Stop()
	assert.False(t, app.Connected())
}

func TestInstallLastWriterWins(t *testing.T) {
	t.Cleanup(func() { Install(nil) })

	first := newApp(t)
	second := newApp(t)
	Install(first)
	Start(engine.Config{})
	Install(second)
	assert.Same(t, second, Current())
	assert.True(t, first.Connected(), "a replaced default keeps its own state")
	assert.False(t, second.Connected())
}
