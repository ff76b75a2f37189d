package game

import "github.com/pthm-cable/dinoevo/telemetry"

// Observer receives deaths and generation summaries as they happen. Calls
// arrive on the simulation goroutine; implementations must not block.
type Observer interface {
	OnDeath(telemetry.DeathEvent)
	OnGeneration(telemetry.GenerationSummary)
}

// Observers fans events out to several observers in order.
type Observers []Observer

func (obs Observers) OnDeath(e telemetry.DeathEvent) {
	for _, o := range obs {
		o.OnDeath(e)
	}
}

func (obs Observers) OnGeneration(s telemetry.GenerationSummary) {
	for _, o := range obs {
		o.OnGeneration(s)
	}
}
