package main

import (
	"context"

	"github.com/natctl/natctl/pkg/cmd"
	"github.com/natctl/natctl/pkg/log"
	"github.com/urfave/cli/v3"
)

func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "Inspect recorded commands",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recorded commands, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "Database connection URL for command history",
						Required: true,
						Sources:  cli.EnvVars("DATABASE_URL"),
					},
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Only list commands from one session",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of commands to list",
						Value:   20,
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "warn",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					log.Setup(command.String("log-level"))

					logger := log.WithModule("cli")

					persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))
					defer func() {
						if err := persistence.Close(ctx); err != nil {
							logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
						}
					}()

					records, err := persistence.Commands(ctx, command.String("session"), command.Int("limit"))
					if err != nil {
						return err
					}

					return printJSON(records)
				},
			},
		},
	}
}
