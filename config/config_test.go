package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.PopulationSize != 20 {
		t.Errorf("population_size = %d, want 20", cfg.AI.PopulationSize)
	}
	if cfg.Settings.DinoGravity != 0.6 || cfg.Settings.DinoLift != 8.5 {
		t.Errorf("gravity/lift = %v/%v, want 0.6/8.5", cfg.Settings.DinoGravity, cfg.Settings.DinoLift)
	}
	if cfg.Settings.SpawnRates.Cacti == 0 {
		t.Error("spawn_rates.cacti not loaded")
	}
	if cfg.Sprites.DinoDuck.H >= cfg.Sprites.Dino.H {
		t.Error("ducking sprite should be shorter than standing sprite")
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("ai:\n  population_size: 50\nsettings:\n  spawn_rates:\n    birds: 90\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.PopulationSize != 50 {
		t.Errorf("population_size = %d, want 50", cfg.AI.PopulationSize)
	}
	if cfg.Settings.SpawnRates.Birds != 90 {
		t.Errorf("spawn_rates.birds = %d, want 90", cfg.Settings.SpawnRates.Birds)
	}
	// Untouched keys keep their defaults.
	if cfg.AI.MutationRate != 0.1 {
		t.Errorf("mutation_rate = %v, want default 0.1", cfg.AI.MutationRate)
	}
	if cfg.Settings.SpawnRates.Cacti != 60 {
		t.Errorf("spawn_rates.cacti = %d, want default 60", cfg.Settings.SpawnRates.Cacti)
	}
}

func TestLoadINIOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.ini")
	data := []byte("[ai]\nmutation_rate = 0.25\nmutable_fields = weight\n\n[settings.spawn_rates]\nclouds = 40\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.MutationRate != 0.25 {
		t.Errorf("mutation_rate = %v, want 0.25", cfg.AI.MutationRate)
	}
	if cfg.AI.MutableFields != "weight" {
		t.Errorf("mutable_fields = %q, want weight", cfg.AI.MutableFields)
	}
	if cfg.Settings.SpawnRates.Clouds != 40 {
		t.Errorf("spawn_rates.clouds = %d, want 40", cfg.Settings.SpawnRates.Clouds)
	}
	if cfg.AI.PopulationSize != 20 {
		t.Errorf("population_size = %d, want default 20", cfg.AI.PopulationSize)
	}
}

func TestLoadINISprites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.ini")
	data := []byte("[sprites.cactus]\nw = 20\n\n[sprites.bird]\nh = 36\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sprites.Cactus.W != 20 || cfg.Sprites.Cactus.H != 35 {
		t.Errorf("cactus sprite = %+v, want {20 35}", cfg.Sprites.Cactus)
	}
	if cfg.Sprites.Bird.W != 46 || cfg.Sprites.Bird.H != 36 {
		t.Errorf("bird sprite = %+v, want {46 36}", cfg.Sprites.Bird)
	}
	if cfg.Sprites.Dino != Default().Sprites.Dino {
		t.Errorf("dino sprite changed to %+v", cfg.Sprites.Dino)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative population", func(c *Config) { c.AI.PopulationSize = -1 }},
		{"zero population", func(c *Config) { c.AI.PopulationSize = 0 }},
		{"mutation rate above one", func(c *Config) { c.AI.MutationRate = 1.5 }},
		{"negative mutation rate", func(c *Config) { c.AI.MutationRate = -0.1 }},
		{"negative deviation", func(c *Config) { c.AI.MutationDeviation = -1 }},
		{"unknown mutable fields", func(c *Config) { c.AI.MutableFields = "state" }},
		{"zero spawn modulus", func(c *Config) { c.Settings.SpawnRates.Cacti = 0 }},
		{"zero score modulus", func(c *Config) { c.Settings.ScoreIncreaseRate = 0 }},
		{"zero gravity", func(c *Config) { c.Settings.DinoGravity = 0 }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.AI.PopulationSize = 33

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init()")
		}
	}()
	Cfg()
}
