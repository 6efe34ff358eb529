package main

import (
	"context"
	"os"

	"github.com/natctl/natctl/pkg/cmd"
	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/log"
	"github.com/natctl/natctl/pkg/tracing"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "natctl-api",
		Usage:                 "Interpret, validate, and dispatch automation commands over HTTP",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the natctl YAML configuration file",
				Value:   "natctl.yaml",
				Sources: cli.EnvVars("NATCTL_CONFIG"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for command history",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "store-url",
				Usage:   "Session store URL (memory://, redis://...)",
				Sources: cli.EnvVars("STORE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("NATCTL_TRACING"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			cfg := config.LoadOrDefault(command.String("config"))
			applyFlagOverrides(&cfg, command)

			logger.InfoContext(ctx, "Initializing natctl API", "port", cfg.API.Port)

			if command.Bool("tracing") {
				if _, err := tracing.NewTracer(ctx, "natctl-api"); err != nil {
					logger.WarnContext(ctx, "Failed to initialize tracer", "error", err)
				}
			}

			registry := cmd.NewRegistry(logger)
			persistence := cmd.NewPersistence(ctx, logger, cfg.DatabaseURL)

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(cfg.EventBus.Provider, logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			sessions := cmd.NewStore(cfg.StoreURL)
			defer func() {
				if err := sessions.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close session store", "error", err)
				}
			}()

			api := NewAPI(
				logger,
				cfg,
				persistence,
				registry,
				eventBus,
				sessions,
			)

			err := api.Start(cfg.API.Port)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(cfg *config.Config, command *cli.Command) {
	if port := command.Int("port"); port != 0 {
		cfg.API.Port = port
	}

	if databaseURL := command.String("database-url"); databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	if provider := command.String("event-bus"); provider != "" {
		cfg.EventBus.Provider = provider
	}

	if storeURL := command.String("store-url"); storeURL != "" {
		cfg.StoreURL = storeURL
	}
}
