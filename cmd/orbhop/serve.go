package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbhop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePack   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the orbhop SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a stage picker. Progress is
kept per SSH user name; results share one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.orbhop/host_key

Examples:
  orbhop serve                           # Listen on :23234 with auto-generated key
  orbhop serve --ssh :2222               # Listen on port 2222
  orbhop serve --host-key ./my_host_key  # Use specific host key
  orbhop serve --db ./orbhop.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePack, "pack", defaultPack, "Pack the stage picker opens on")
}

func runServe(_ *cobra.Command, _ []string) error {
	s, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := loadPack(flagServePack); err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      s.cfg.Platform.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Pack:        flagServePack,
		TickRate:    s.cfg.Platform.TickRate,
		Timing:      s.cfg.Engine.Timing(),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting orbhop SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
