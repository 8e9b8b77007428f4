package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/springlab/internal/lattice"
	"github.com/san-kum/springlab/internal/vec"
)

const (
	DefaultRows      = 40
	DefaultCols      = 60
	DefaultCellSize  = 10.0
	DefaultMass      = 1.0
	DefaultStiffness = 1000.0
	DefaultDamping   = 5.0
	DefaultGravityY  = 98.0
	DefaultWindX     = 75.0
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 10.0
	DefaultTimeScale = 1.0
)

// Config is the full tuning surface of a simulation: lattice geometry,
// physical constants, store capacities, and run timing.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Physics PhysicsConfig `yaml:"physics"`
	Limits  LimitsConfig  `yaml:"limits"`
	Run     RunConfig     `yaml:"run"`
}

type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	CellSize float64 `yaml:"cell_size"`
}

type PhysicsConfig struct {
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	GravityX  float64 `yaml:"gravity_x"`
	GravityY  float64 `yaml:"gravity_y"`
	WindX     float64 `yaml:"wind_x"`
	WindY     float64 `yaml:"wind_y"`
}

type LimitsConfig struct {
	MassCapacity   int `yaml:"mass_capacity"`
	SpringCapacity int `yaml:"spring_capacity"`
	ForceCapacity  int `yaml:"force_capacity"`
}

type RunConfig struct {
	Dt        float64 `yaml:"dt"`
	TimeScale float64 `yaml:"time_scale"`
	Duration  float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Rows:     DefaultRows,
			Cols:     DefaultCols,
			OriginX:  100,
			OriginY:  0,
			CellSize: DefaultCellSize,
		},
		Physics: PhysicsConfig{
			Mass:      DefaultMass,
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
			GravityY:  DefaultGravityY,
			WindX:     DefaultWindX,
		},
		Limits: LimitsConfig{
			MassCapacity:   lattice.DefaultSystemCapacity,
			SpringCapacity: lattice.DefaultSystemCapacity,
			ForceCapacity:  lattice.DefaultForceCapacity,
		},
		Run: RunConfig{
			Dt:        DefaultDt,
			TimeScale: DefaultTimeScale,
			Duration:  DefaultDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SystemConfig maps the capacity and gravity settings onto the lattice core.
func (c *Config) SystemConfig() lattice.Config {
	return lattice.Config{
		MassCapacity:   c.Limits.MassCapacity,
		SpringCapacity: c.Limits.SpringCapacity,
		ForceCapacity:  c.Limits.ForceCapacity,
		Gravity:        vec.New(c.Physics.GravityX, c.Physics.GravityY),
	}
}

// GridSpec maps the grid and physics settings onto a lattice build.
func (c *Config) GridSpec() lattice.GridSpec {
	return lattice.GridSpec{
		Rows:      c.Grid.Rows,
		Cols:      c.Grid.Cols,
		Origin:    vec.New(c.Grid.OriginX, c.Grid.OriginY),
		CellSize:  c.Grid.CellSize,
		Mass:      c.Physics.Mass,
		Stiffness: c.Physics.Stiffness,
		Damping:   c.Physics.Damping,
	}
}

// Wind is the uniform force injected while wind is enabled.
func (c *Config) Wind() vec.Vec2 {
	return vec.New(c.Physics.WindX, c.Physics.WindY)
}

// NewStepper builds a fresh System and Stepper from this configuration.
func (c *Config) NewStepper() (*lattice.Stepper, error) {
	sys := lattice.NewSystem(c.SystemConfig())
	if err := lattice.BuildGrid(sys, c.GridSpec()); err != nil {
		return nil, err
	}
	st := lattice.NewStepper(sys)
	st.SetWind(c.Wind())
	return st, nil
}
