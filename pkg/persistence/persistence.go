// Package persistence provides the storage abstraction for command history.
package persistence

import (
	"context"

	"github.com/natctl/natctl/pkg/models"
)

// Persistence stores the trace of interpreted commands. It is a collaborator
// of the pipeline, never a dependency of the core packages: interpreter,
// validator, and retry stay storage-free.
type Persistence interface {
	SaveCommand(ctx context.Context, record *models.CommandRecord) error
	Commands(ctx context.Context, sessionID string, limit int) ([]*models.CommandRecord, error)
	CommandByID(ctx context.Context, id string) (*models.CommandRecord, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
