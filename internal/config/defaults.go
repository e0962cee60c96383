package config

import (
	_ "embed"

	"github.com/vovakirdan/orbhop/internal/stage"
)

//go:embed defaults/orbhop.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	t := stage.DefaultTiming()
	return Config{
		Engine: EngineConfig{
			MoveTime:        t.MoveTime,
			HistoryCapacity: t.HistoryCapacity,
			ButtonWait:      t.ButtonWait,
			ShrinkTime:      t.ShrinkTime,
			SwitchTime:      t.SwitchTime,
			FadeTime:        t.FadeTime,
			TeleportTime:    t.TeleportTime,
			DeathTime:       t.DeathTime,
		},
		Platform: PlatformConfig{
			TickRate: 60,
			DBPath:   "~/.orbhop/orbhop.db",
			Profile:  "default",
			Pace:     string(PaceNormal),
		},
	}
}
