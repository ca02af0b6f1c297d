package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Versifine/hearth/internal/config"
	"github.com/Versifine/hearth/internal/debug"
	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/logger"
	"github.com/Versifine/hearth/internal/protocol"
	"github.com/Versifine/hearth/internal/server"
	"github.com/Versifine/hearth/internal/status"
	"github.com/Versifine/hearth/internal/world"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Exited with error", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hearth",
		Usage: "A minimal Minecraft " + protocol.CurrentVersionName + " server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				Value:   defaultConfigPath,
				EnvVars: []string{"HEARTH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override logging.level (debug, info, warn, error)",
				EnvVars: []string{"HEARTH_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{configCommand()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"), c.IsSet("config"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.Logging.Level = lvl
			}
			if err := logger.Init(logger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				File:   cfg.Logging.File,
			}); err != nil {
				return cli.Exit(err, 1)
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
}

// loadConfig falls back to the defaults when the default path is absent.
// An explicitly given path must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Info("No config file found, using defaults", "path", path)
		return config.Default(), nil
	}
	return nil, fmt.Errorf("load config: %w", err)
}

func run(ctx context.Context, cfg *config.Config) error {
	bus := event.NewBus()
	tracker := server.NewPlayerTracker(bus)

	w, err := world.New(world.Options{
		Dimension:          cfg.World.Dimension,
		RegistryFile:       cfg.World.RegistryFile,
		MaxPlayers:         cfg.Status.MaxPlayers,
		ViewDistance:       cfg.World.ViewDistance,
		SimulationDistance: cfg.World.SimulationDistance,
		Gamemode:           cfg.World.Gamemode,
		HashedSeed:         cfg.World.HashedSeed,
		SpawnBlockState:    world.StoneBlockState,
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	builder, err := status.New(status.Options{
		VersionName:        protocol.CurrentVersionName,
		Protocol:           protocol.CurrentProtocolVersion,
		MaxPlayers:         cfg.Status.MaxPlayers,
		Description:        cfg.Status.Description,
		FaviconFile:        cfg.Status.Favicon,
		EnforcesSecureChat: cfg.Status.EnforcesSecureChat,
		PreviewsChat:       cfg.Status.PreviewsChat,
		CacheTTL:           cfg.Status.CacheTTL,
	}, tracker)
	if err != nil {
		return fmt.Errorf("build status: %w", err)
	}

	var quota *server.Quota
	if cfg.Quota.Enabled {
		quota = server.NewQuota(cfg.Quota.EventsPerSecond, cfg.Quota.Burst, cfg.Quota.MaxEntries)
	}

	srv := server.NewServer(server.Options{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.Session.ReadTimeout,
		KeepAliveInterval: cfg.Session.KeepAliveInterval,
		Quota:             quota,
	}, builder, w, bus)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if debug.Interactive() {
		console := debug.NewConsole(tracker, builder, srv, cancel)
		go func() {
			if err := console.Start(ctx); err != nil {
				slog.Warn("Console stopped", "error", err)
			}
		}()
	}
	return srv.Start(ctx)
}
