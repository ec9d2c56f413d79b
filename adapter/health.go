package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/attrkit/attrkit/engine"
)

// memUsedPercentLimit is the readiness ceiling for host memory pressure.
const memUsedPercentLimit = 95.0

// NewHealthHandler exposes the engine over the standard /live and /ready
// endpoints: liveness guards against goroutine leaks, readiness requires
// the engine to be connected and the host not to be memory-starved.
func NewHealthHandler(app *engine.Application) healthcheck.Handler {
	h := healthcheck.NewHandler()
	h.AddLivenessCheck("goroutine-count", healthcheck.GoroutineCountCheck(500))
	h.AddReadinessCheck("engine-connected", func() error {
		if !app.Connected() {
			return fmt.Errorf("engine disconnected")
		}
		return nil
	})
	h.AddReadinessCheck("host-memory", func() error {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return err
		}
		if vm.UsedPercent > memUsedPercentLimit {
			return fmt.Errorf("memory pressure: %.1f%% used", vm.UsedPercent)
		}
		return nil
	})
	return h
}
