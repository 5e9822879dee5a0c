package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/world"
	"gopkg.in/yaml.v3"
)

// WorldPreset describes terrain generation parameters in defaults.yaml.
type WorldPreset struct {
	SizeX         int     `yaml:"size_x"`
	SizeY         int     `yaml:"size_y"`
	SizeZ         int     `yaml:"size_z"`
	BaseHeight    int     `yaml:"base_height"`
	Amplitude     float64 `yaml:"amplitude"`
	Wavelength    float64 `yaml:"wavelength"`
	MulchDensity  float64 `yaml:"mulch_density"`
	AcidicDensity float64 `yaml:"acidic_density"`
}

// Preset is a named colony configuration in defaults.yaml.
// Zero fields leave the built-in default in place.
type Preset struct {
	PopulationSize     int         `yaml:"population_size"`
	GenerationDuration float64     `yaml:"generation_duration"`
	MutationChance     float64     `yaml:"mutation_chance"`
	MutationAmount     float64     `yaml:"mutation_amount"`
	EliteCount         int         `yaml:"elite_count"`
	MaxHealth          float64     `yaml:"max_health"`
	HealthDecayRate    float64     `yaml:"health_decay_rate"`
	DecisionInterval   float64     `yaml:"decision_interval"`
	NestInterval       float64     `yaml:"nest_interval"`
	MinHealthToNest    float64     `yaml:"min_health_to_nest"`
	NestCostFraction   float64     `yaml:"nest_cost_fraction"`
	WorkerRadius       float64     `yaml:"worker_radius"`
	World              WorldPreset `yaml:"world"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Unknown keys are errors so typos never silently fall back to defaults.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return cfg, nil
}

// Preset looks up a preset by name.
func (c Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// Apply overlays the preset's non-zero fields onto colony and terrain configs.
func (p Preset) Apply(colony *sim.ColonyConfig, w *world.Config) {
	setInt(&colony.Evolution.PopulationSize, p.PopulationSize)
	setFloat(&colony.Evolution.GenerationDuration, p.GenerationDuration)
	setFloat(&colony.Evolution.MutationChance, p.MutationChance)
	setFloat(&colony.Evolution.MutationAmount, p.MutationAmount)
	setInt(&colony.Evolution.EliteCount, p.EliteCount)
	setFloat(&colony.Agent.MaxHealth, p.MaxHealth)
	setFloat(&colony.Agent.HealthDecayRate, p.HealthDecayRate)
	setFloat(&colony.Agent.DecisionInterval, p.DecisionInterval)
	setFloat(&colony.Queen.NestInterval, p.NestInterval)
	setFloat(&colony.Queen.MinHealthToNest, p.MinHealthToNest)
	setFloat(&colony.Queen.NestCostFraction, p.NestCostFraction)
	setFloat(&colony.Spawn.WorkerRadius, p.WorkerRadius)

	setInt(&w.SizeX, p.World.SizeX)
	setInt(&w.SizeY, p.World.SizeY)
	setInt(&w.SizeZ, p.World.SizeZ)
	setInt(&w.BaseHeight, p.World.BaseHeight)
	setFloat(&w.Amplitude, p.World.Amplitude)
	setFloat(&w.Wavelength, p.World.Wavelength)
	setFloat(&w.MulchDensity, p.World.MulchDensity)
	setFloat(&w.AcidicDensity, p.World.AcidicDensity)
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
