package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbhop/internal/config"
)

// settings is the configuration after flags have been applied.
type settings struct {
	cfg    config.Config
	logger *log.Logger
	logOut io.Closer
}

// loadSettings loads the config file and applies the global flags on top.
// Interactive commands pass quiet so that logs never reach the terminal
// the UI is drawn on, unless --log-file is given.
func loadSettings(quiet bool) (*settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagFPS > 0 {
		cfg.Platform.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Platform.DBPath = flagDBPath
	}
	if flagProfile != "" {
		cfg.Platform.Profile = flagProfile
	}
	pace := cfg.Platform.Pace
	if flagPace != "" {
		pace = flagPace
	}
	preset, err := config.ParsePace(pace)
	if err != nil {
		return nil, err
	}
	config.ApplyPace(&cfg, preset)

	s := &settings{cfg: cfg}
	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, s.logOut = f, f
	case quiet:
		out = io.Discard
	}

	s.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "orbhop",
	})
	if flagDebug {
		s.logger.SetLevel(log.DebugLevel)
	}
	return s, nil
}

func (s *settings) Close() {
	if s.logOut != nil {
		s.logOut.Close()
	}
}
