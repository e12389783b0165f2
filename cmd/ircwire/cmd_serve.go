package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/ircwire/internal/client"
	"github.com/user/ircwire/internal/config"
	"github.com/user/ircwire/internal/dispatch"
	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/scheduler"
	"github.com/user/ircwire/internal/state"
	"github.com/user/ircwire/internal/transport"
	"github.com/user/ircwire/internal/types"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the configured server and run the daemon",
	RunE:  runServe,
}

func writePIDFile(dataDir string) (string, error) {
	pidPath := filepath.Join(dataDir, "ircwire.pid")
	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write PID file: %w", err)
	}
	return pidPath, nil
}

func newTransport(cfg *config.Config) (transport.Transport, error) {
	switch cfg.Server.Transport {
	case "", "tcp":
		return transport.NewTCP(cfg.Server.Address), nil
	case "websocket":
		return transport.NewWebSocket(cfg.Server.Address), nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", cfg.Server.Transport)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pidPath, err := writePIDFile(cfg.DataDir)
	if err != nil {
		return err
	}
	defer os.Remove(pidPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event bus
	bus := dispatch.NewBus(int64(cfg.MaxConcurrent))
	bus.Start(ctx)
	defer bus.Stop()

	// Journal every event the connection produces
	journal := state.NewJournal(cfg.DataDir)
	bus.Subscribe(dispatch.KindAll, func(connID types.ConnID, ev irc.Event) error {
		if ev.Kind() == irc.KindRaw {
			return nil
		}
		return journal.Record(ctx, connID, ev)
	})

	// Connection
	tr, err := newTransport(cfg)
	if err != nil {
		return err
	}
	conn := client.NewConn(tr, bus, client.Options{
		Server:   cfg.Server.Address,
		Nick:     cfg.Identity.Nick,
		Ident:    cfg.Identity.Ident,
		RealName: cfg.Identity.RealName,
		Password: cfg.Server.Password,
		Channels: cfg.Channels,
	})
	if err := conn.Start(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Stop("shutting down")

	slog.Info("ircwire started",
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"server", cfg.Server.Address,
		"transport", cfg.Server.Transport,
		"nick", cfg.Identity.Nick,
		"channels", cfg.Channels,
		"pid_file", pidPath,
	)

	// Announcement store + scheduler
	announceStore := state.NewAnnouncementStore(filepath.Join(cfg.DataDir, "announcements.json"))
	sched := scheduler.New(announceStore, func(target, text string) {
		if err := conn.Say(target, text); err != nil {
			slog.Error("announcement failed", "target", target, "error", err)
		}
	})
	if cfg.Keepalive != "" {
		sched.SetKeepalive(cfg.Keepalive, func() {
			server := cfg.Server.Address
			if s, ok := conn.Session().Server(); ok {
				server = s
			}
			if err := conn.Ping(server); err != nil {
				slog.Error("keepalive ping failed", "error", err)
			}
		})
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()
	slog.Info("scheduler started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		if sig == syscall.SIGHUP {
			slog.Info("received SIGHUP, restarting")
			execPath, err := os.Executable()
			if err != nil {
				slog.Error("failed to get executable path", "error", err)
				continue
			}
			// Clean up PID file before re-exec
			os.Remove(pidPath)
			if err := syscall.Exec(execPath, os.Args, os.Environ()); err != nil {
				slog.Error("failed to re-exec", "error", err)
				// Re-write PID file since we failed to re-exec
				if _, writeErr := writePIDFile(cfg.DataDir); writeErr != nil {
					slog.Error("failed to re-write PID file", "error", writeErr)
				}
				continue
			}
		}
		// SIGINT or SIGTERM
		slog.Info("shutting down", "signal", sig)
		return nil
	}
}
