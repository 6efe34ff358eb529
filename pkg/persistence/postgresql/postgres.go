// Package postgresql provides PostgreSQL-backed command history.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // postgres driver
	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db          *sql.DB
	logger      *slog.Logger
	commandRepo *CommandRepository
}

// NewPersistence connects, runs migrations, and returns a ready persistence
// layer.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:          database,
		logger:      logger,
		commandRepo: NewCommandRepository(database, logger),
	}, nil
}

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS command_records (
				id UUID PRIMARY KEY,
				session_id TEXT NOT NULL DEFAULT '',
				raw_text TEXT NOT NULL,
				kind TEXT NOT NULL,
				valid BOOLEAN NOT NULL DEFAULT FALSE,
				reason TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_command_records_session
				ON command_records (session_id, created_at DESC);
		`,
	}
}

func (p *Persistence) SaveCommand(ctx context.Context, record *models.CommandRecord) error {
	return p.commandRepo.Save(ctx, record)
}

func (p *Persistence) Commands(ctx context.Context, sessionID string, limit int) ([]*models.CommandRecord, error) {
	return p.commandRepo.List(ctx, sessionID, limit)
}

func (p *Persistence) CommandByID(ctx context.Context, id string) (*models.CommandRecord, error) {
	return p.commandRepo.GetByID(ctx, id)
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
