package config

import (
	"fmt"
	"math"
)

// PacePreset scales how fast the stage animates.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// ParsePace validates a preset name.
func ParsePace(s string) (PacePreset, error) {
	switch p := PacePreset(s); p {
	case PaceRelaxed, PaceNormal, PaceBrisk:
		return p, nil
	case "":
		return PaceNormal, nil
	}
	return "", fmt.Errorf("unknown pace %q (want relaxed, normal or brisk)", s)
}

// Factor returns the duration multiplier of the preset.
func (p PacePreset) Factor() float64 {
	switch p {
	case PaceRelaxed:
		return 1.5
	case PaceBrisk:
		return 0.6
	default:
		return 1.0
	}
}

// ApplyPace scales every engine duration by the preset factor.
// Durations never drop below one tick.
func ApplyPace(cfg *Config, preset PacePreset) {
	f := preset.Factor()
	scale := func(v *float64) {
		*v = math.Max(1, math.Round(*v*f))
	}
	scale(&cfg.Engine.MoveTime)
	scale(&cfg.Engine.ButtonWait)
	scale(&cfg.Engine.ShrinkTime)
	scale(&cfg.Engine.SwitchTime)
	scale(&cfg.Engine.FadeTime)
	scale(&cfg.Engine.TeleportTime)
	scale(&cfg.Engine.DeathTime)
	cfg.Platform.Pace = string(preset)
}
