package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natctl/natctl/pkg/log"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/validator"
	"github.com/urfave/cli/v3"
)

var errMissingFile = errors.New("a file argument is required")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate an action document from a JSON file (use - for stdin)",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			path := command.Args().First()
			if path == "" {
				return errMissingFile
			}

			payload, err := readPayload(path)
			if err != nil {
				return err
			}

			logger := log.WithModule("cli")
			actionValidator := validator.New(registry.Default(logger), logger)

			outcome := actionValidator.ValidateJSON(payload)
			if outcome.IsValid {
				if document, ok := outcome.Normalized.(map[string]any); ok {
					outcome = actionValidator.ValidateDocument(document)
				}
			}

			if err := printJSON(outcome); err != nil {
				return err
			}

			if !outcome.IsValid {
				return fmt.Errorf("action document is invalid: %s", outcome.Reason)
			}

			return nil
		},
	}
}

func readPayload(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}
