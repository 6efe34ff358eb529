package main

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/natctl/natctl/pkg/cmd"
	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/log"
	"github.com/natctl/natctl/pkg/services"
	actionvalidator "github.com/natctl/natctl/pkg/validator"
	"github.com/natctl/natctl/pkg/web"
	"github.com/urfave/cli/v3"
)

func RunAPICommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Start the HTTP API",
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
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("api")

			cfg := config.LoadOrDefault(command.String("config"))

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

			logger.InfoContext(ctx, "Initializing natctl API", "port", cfg.API.Port)

			registry := cmd.NewRegistry(logger)
			persistence := cmd.NewPersistence(ctx, logger, cfg.DatabaseURL)

			defer func() {
				if err := persistence.Close(ctx); err != nil {
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

			interp := interpreter.New(cfg.Interpreter, logger)
			av := actionvalidator.New(registry, logger)

			commandService := services.NewCommands(
				interp,
				av,
				registry,
				eventBus,
				persistence,
				sessions,
				logger,
			)

			handlers := web.NewAPIHandlers(
				commandService,
				interp,
				av,
				validator.New(validator.WithRequiredStructEnabled()),
				registry,
			)

			app := web.NewApp(handlers)

			return app.Listen(":" + strconv.Itoa(cfg.API.Port))
		},
	}
}
