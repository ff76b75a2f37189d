package systems

import (
	"math"

	"github.com/pthm-cable/dinoevo/config"
)

// SpawnRates holds spawn moduli in frames.
type SpawnRates struct {
	Cacti  int
	Birds  int
	Clouds int
}

// Settings are the per-generation knobs the difficulty ramp turns. The
// generation manager owns one value and restores it from a baseline at every
// rollover.
type Settings struct {
	BgSpeed           float64
	BirdSpeed         float64
	CloudSpeed        float64
	Gravity           float64
	Lift              float64
	LegsRate          int
	SpawnRates        SpawnRates
	ScoreIncreaseRate int
}

// SettingsFromConfig converts the configured baseline.
func SettingsFromConfig(c config.SettingsConfig) Settings {
	return Settings{
		BgSpeed:    c.BgSpeed,
		BirdSpeed:  c.BirdSpeed,
		CloudSpeed: c.CloudSpeed,
		Gravity:    c.DinoGravity,
		Lift:       c.DinoLift,
		LegsRate:   c.DinoLegsRate,
		SpawnRates: SpawnRates{
			Cacti:  c.SpawnRates.Cacti,
			Birds:  c.SpawnRates.Birds,
			Clouds: c.SpawnRates.Clouds,
		},
		ScoreIncreaseRate: c.ScoreIncreaseRate,
	}
}

// Snapshot returns a copy of s.
func (s Settings) Snapshot() Settings {
	return s
}

// Restore overwrites s with baseline.
func (s *Settings) Restore(baseline Settings) {
	*s = baseline
}

// Difficulty holds the level thresholds of the ramp.
type Difficulty struct {
	LevelDivisor  int
	BirdLevel     int
	LinearFrom    int
	GeometricFrom int
	LegRateFloor  int
}

// DifficultyFromConfig converts the configured thresholds.
func DifficultyFromConfig(c config.DifficultyConfig) Difficulty {
	return Difficulty{
		LevelDivisor:  c.LevelDivisor,
		BirdLevel:     c.BirdLevel,
		LinearFrom:    c.LinearFrom,
		GeometricFrom: c.GeometricFrom,
		LegRateFloor:  c.LegRateFloor,
	}
}

// Level derives the level from a score.
func (d Difficulty) Level(score int) int {
	return score / d.LevelDivisor
}

// BirdsActive reports whether aerial hazards spawn and move at level.
func (d Difficulty) BirdsActive(level int) bool {
	return level > d.BirdLevel
}

// Ramp returns s escalated for having just reached level. It is applied once
// per level-up, so its effects accumulate within a generation.
//
// Below LinearFrom nothing changes. Up to GeometricFrom the scroll speed grows
// by one and birds fly at 0.8x. From GeometricFrom on the scroll speed grows
// by 10% (rounded up), birds fly at 0.9x, cacti spawn 2% more often (rounded
// down, never below every frame) and every even level speeds up the leg cycle
// until LegRateFloor.
func Ramp(level int, s Settings, d Difficulty) Settings {
	switch {
	case level < d.LinearFrom:
	case level < d.GeometricFrom:
		s.BgSpeed++
		s.BirdSpeed = s.BgSpeed * 0.8
	default:
		s.BgSpeed = math.Ceil(s.BgSpeed * 1.1)
		s.BirdSpeed = s.BgSpeed * 0.9
		s.SpawnRates.Cacti = max(1, int(math.Floor(float64(s.SpawnRates.Cacti)*0.98)))
		if level%2 == 0 && s.LegsRate > d.LegRateFloor {
			s.LegsRate--
		}
	}
	return s
}
