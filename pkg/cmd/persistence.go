// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/natctl/natctl/pkg/persistence"
	"github.com/natctl/natctl/pkg/persistence/file"
	"github.com/natctl/natctl/pkg/persistence/postgresql"
)

// NewPersistence selects the persistence provider from the database URL
// scheme: "postgres://" and "postgresql://" connect to PostgreSQL, anything
// else is file-backed.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create PostgreSQL persistence: %w", err))
		}

		return p
	}

	return file.NewPersistence(databaseURL)
}
