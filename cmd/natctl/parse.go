package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/log"
	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/validator"
	"github.com/urfave/cli/v3"
)

var errMissingText = errors.New("a command text argument is required")

func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "Interpret a text command and print the resulting action",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the natctl YAML configuration file",
				Value:   "natctl.yaml",
				Sources: cli.EnvVars("NATCTL_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Also validate the interpreted action(s)",
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

			text := command.Args().First()
			if text == "" {
				return errMissingText
			}

			cfg := config.LoadOrDefault(command.String("config"))
			logger := log.WithModule("cli")

			action := interpreter.New(cfg.Interpreter, logger).Interpret(text)

			if !command.Bool("validate") {
				return printJSON(action)
			}

			reg := registry.Default(logger)
			actionValidator := validator.New(reg, logger)

			results := make([]map[string]any, 0, 1)
			for _, step := range steps(action) {
				results = append(results, map[string]any{
					"action":  step,
					"outcome": actionValidator.Validate(step),
				})
			}

			return printJSON(map[string]any{
				"action":  action,
				"results": results,
			})
		},
	}
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

// steps flattens an action into its executable steps.
func steps(action *models.Action) []*models.Action {
	if stepActions := action.Steps(); stepActions != nil {
		return stepActions
	}

	return []*models.Action{action}
}
