package telemetry

import "log/slog"

// Collector accumulates deaths and generation summaries. It satisfies the
// game's observer interface and buffers records until the next Flush.
type Collector struct {
	window int // generations per flush

	history []GenerationSummary

	pendingDeaths      []DeathEvent
	pendingGenerations []GenerationSummary
}

// NewCollector creates a collector that asks to be flushed every window generations.
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 1
	}
	return &Collector{window: window}
}

// OnDeath records a death.
func (c *Collector) OnDeath(e DeathEvent) {
	c.pendingDeaths = append(c.pendingDeaths, e)
}

// OnGeneration records a finished generation.
func (c *Collector) OnGeneration(s GenerationSummary) {
	c.history = append(c.history, s)
	c.pendingGenerations = append(c.pendingGenerations, s)
	if s.NewBest {
		slog.Info("new best", "generation", s.Generation, "score", s.Score)
	}
}

// ShouldFlush returns true once window generations are buffered.
func (c *Collector) ShouldFlush() bool {
	return len(c.pendingGenerations) >= c.window
}

// Flush returns the buffered records and resets the buffers.
func (c *Collector) Flush() ([]GenerationSummary, []DeathEvent) {
	gens, deaths := c.pendingGenerations, c.pendingDeaths
	c.pendingGenerations, c.pendingDeaths = nil, nil
	return gens, deaths
}

// History returns every summary recorded so far.
func (c *Collector) History() []GenerationSummary {
	return c.history
}

// Last returns the most recent summary.
func (c *Collector) Last() (GenerationSummary, bool) {
	if len(c.history) == 0 {
		return GenerationSummary{}, false
	}
	return c.history[len(c.history)-1], true
}
