package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// overlayINI applies an INI file on top of c. Sections mirror the YAML keys;
// spawn rates live in [settings.spawn_rates] and sprite sizes in
// [sprites.<name>]. Keys missing from the file keep
// their current value.
func (c *Config) overlayINI(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	sections := []struct {
		name string
		dst  any
	}{
		{"canvas", &c.Canvas},
		{"sprites.dino", &c.Sprites.Dino},
		{"sprites.dino_duck", &c.Sprites.DinoDuck},
		{"sprites.cactus", &c.Sprites.Cactus},
		{"sprites.cactus_double", &c.Sprites.CactusDouble},
		{"sprites.cactus_double_b", &c.Sprites.CactusDoubleB},
		{"sprites.cactus_triple", &c.Sprites.CactusTriple},
		{"sprites.bird", &c.Sprites.Bird},
		{"sprites.cloud", &c.Sprites.Cloud},
		{"dino", &c.Dino},
		{"cactus", &c.Cactus},
		{"bird", &c.Bird},
		{"cloud", &c.Cloud},
		{"speed_mod", &c.SpeedMod},
		{"settings", &c.Settings},
		{"settings.spawn_rates", &c.Settings.SpawnRates},
		{"difficulty", &c.Difficulty},
		{"ai", &c.AI},
		{"telemetry", &c.Telemetry},
		{"storage", &c.Storage},
	}

	for _, s := range sections {
		sec, err := f.GetSection(s.name)
		if err != nil {
			continue
		}
		if err := sec.MapTo(s.dst); err != nil {
			return fmt.Errorf("parsing config section [%s]: %w", s.name, err)
		}
	}
	return nil
}
