package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/platform/tui"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gameroom SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the game picker menu and its
own game instances. Scores are stored per server: all users share the
same high scores.

Host key handling:
  - --host-key, or ssh.host_key in gameroom.toml
  - generated on first start when the file does not exist

Examples:
  gameroom serve                           # Listen on the settings address (:2222)
  gameroom serve --ssh :23234              # Listen on port 23234
  gameroom serve --host-key ./my_host_key  # Use specific host key
  gameroom serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (empty = settings)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (empty = settings)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		settings.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		settings.SSH.HostKey = flagHostKey
	}

	logger, closer, err := newLogger(settings, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := storage.OpenFallback(settings.Storage.DB, logger)
	defer store.Close()

	opts, err := hostOptions(settings, store, logger)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     settings.SSH.Addr,
		HostKeyPath: settings.SSH.HostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Starting gameroom SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}
