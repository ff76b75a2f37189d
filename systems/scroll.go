package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinoevo/components"
)

// ScrollSystem moves every actor left by its category speed.
type ScrollSystem struct {
	filter    ecs.Filter3[components.Position, components.Motion, components.Hazard]
	wingsRate int
}

// NewScrollSystem creates a new scroll system. Birds flap every wingsRate frames.
func NewScrollSystem(w *ecs.World, wingsRate int) *ScrollSystem {
	return &ScrollSystem{
		filter:    *ecs.NewFilter3[components.Position, components.Motion, components.Hazard](w),
		wingsRate: max(1, wingsRate),
	}
}

// Update advances every actor one frame. Birds are frozen while birdsActive is false.
func (s *ScrollSystem) Update(set *Settings, birdsActive bool) {
	query := s.filter.Query()
	for query.Next() {
		pos, motion, hazard := query.Get()

		switch hazard.Kind {
		case components.KindCactus:
			pos.X -= set.BgSpeed
		case components.KindBird:
			if !birdsActive {
				continue
			}
			pos.X -= set.BirdSpeed * motion.SpeedMod
			hazard.Frames++
			if hazard.Frames >= s.wingsRate {
				hazard.Frames = 0
				if hazard.Visual == components.VisualBirdWingsUp {
					hazard.Visual = components.VisualBirdWingsDown
				} else {
					hazard.Visual = components.VisualBirdWingsUp
				}
			}
		case components.KindCloud:
			pos.X -= set.CloudSpeed * motion.SpeedMod
		}
	}
}

// EvictionSystem removes actors whose right edge has left the canvas.
type EvictionSystem struct {
	filter   ecs.Filter2[components.Position, components.Body]
	toRemove []ecs.Entity
}

// NewEvictionSystem creates a new eviction system.
func NewEvictionSystem(w *ecs.World) *EvictionSystem {
	return &EvictionSystem{
		filter: *ecs.NewFilter2[components.Position, components.Body](w),
	}
}

// Update removes off-screen actors and returns how many were removed.
func (s *EvictionSystem) Update(w *ecs.World) int {
	// First pass: collect (the world must not change during a query)
	s.toRemove = s.toRemove[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, body := query.Get()
		if pos.X <= -body.W {
			s.toRemove = append(s.toRemove, query.Entity())
		}
	}

	// Second pass: remove
	for _, e := range s.toRemove {
		w.RemoveEntity(e)
	}
	return len(s.toRemove)
}
