// Package main provides the natctl command-line interface.
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "natctl",
		Usage:                 "Turn free-text automation commands into validated actions",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ParseCommand(),
			ValidateCommand(),
			HistoryCommand(),
			{
				Name:    "api",
				Aliases: []string{"a"},
				Usage:   "Manage the HTTP API",
				Commands: []*cli.Command{
					RunAPICommand(),
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
