// Package config provides YAML-based configuration loading and pace
// presets for orbhop.
package config

import "github.com/vovakirdan/orbhop/internal/stage"

// Config is the complete orbhop configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Platform PlatformConfig `yaml:"platform"`
}

// EngineConfig holds simulation durations, in ticks.
type EngineConfig struct {
	MoveTime        float64 `yaml:"move_time"`
	HistoryCapacity int     `yaml:"history_capacity"`
	ButtonWait      float64 `yaml:"button_wait"`
	ShrinkTime      float64 `yaml:"shrink_time"`
	SwitchTime      float64 `yaml:"switch_time"`
	FadeTime        float64 `yaml:"fade_time"`
	TeleportTime    float64 `yaml:"teleport_time"`
	DeathTime       float64 `yaml:"death_time"`
}

// PlatformConfig holds front-end settings.
type PlatformConfig struct {
	TickRate int    `yaml:"tick_rate"` // simulation ticks per second
	DBPath   string `yaml:"db_path"`
	Profile  string `yaml:"profile"`
	Pace     string `yaml:"pace"` // relaxed, normal or brisk
}

// Timing converts the engine section into stage timing.
func (e EngineConfig) Timing() stage.Timing {
	return stage.Timing{
		MoveTime:        e.MoveTime,
		HistoryCapacity: e.HistoryCapacity,
		ButtonWait:      e.ButtonWait,
		ShrinkTime:      e.ShrinkTime,
		SwitchTime:      e.SwitchTime,
		FadeTime:        e.FadeTime,
		TeleportTime:    e.TeleportTime,
		DeathTime:       e.DeathTime,
	}
}

// Validate replaces nonsensical values with defaults.
func (c *Config) Validate() {
	d := Default()
	fix := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fix(&c.Engine.MoveTime, d.Engine.MoveTime)
	fix(&c.Engine.ButtonWait, d.Engine.ButtonWait)
	fix(&c.Engine.ShrinkTime, d.Engine.ShrinkTime)
	fix(&c.Engine.SwitchTime, d.Engine.SwitchTime)
	fix(&c.Engine.FadeTime, d.Engine.FadeTime)
	fix(&c.Engine.TeleportTime, d.Engine.TeleportTime)
	fix(&c.Engine.DeathTime, d.Engine.DeathTime)
	if c.Engine.HistoryCapacity < 1 {
		c.Engine.HistoryCapacity = d.Engine.HistoryCapacity
	}
	if c.Platform.TickRate <= 0 {
		c.Platform.TickRate = d.Platform.TickRate
	}
	if c.Platform.DBPath == "" {
		c.Platform.DBPath = d.Platform.DBPath
	}
	if c.Platform.Profile == "" {
		c.Platform.Profile = d.Platform.Profile
	}
	if c.Platform.Pace == "" {
		c.Platform.Pace = d.Platform.Pace
	}
}
