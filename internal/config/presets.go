package config

import "sort"

// Presets are named tunings covering the classic demo setups: a wide pinned
// curtain, a coarse small sheet, and a single-column rope.
var presets = map[string]func() *Config{
	"curtain": DefaultConfig,
	"sheet": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 20, Cols: 20, OriginX: 10, OriginY: 10, CellSize: 25}
		cfg.Physics.Damping = 1
		cfg.Physics.WindX = 10
		return cfg
	},
	"rope": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 30, Cols: 1, OriginX: 400, OriginY: 0, CellSize: 15}
		cfg.Physics.Stiffness = 800
		cfg.Physics.Damping = 2
		return cfg
	},
	"stiff": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 15, Cols: 25, OriginX: 150, OriginY: 20, CellSize: 16}
		cfg.Physics.Stiffness = 4000
		cfg.Physics.Damping = 10
		cfg.Run.Dt = 1.0 / 120.0
		return cfg
	},
}

// Preset returns a fresh Config for name, or nil when unknown.
func Preset(name string) *Config {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
