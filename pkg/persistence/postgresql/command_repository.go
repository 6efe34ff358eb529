package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence"
)

// CommandRepository handles command record database operations.
type CommandRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCommandRepository(db *sql.DB, logger *slog.Logger) *CommandRepository {
	return &CommandRepository{db: db, logger: logger}
}

func (r *CommandRepository) Save(ctx context.Context, record *models.CommandRecord) error {
	if record == nil || record.ID == "" {
		return persistence.ErrInvalidRecord
	}

	query := `
		INSERT INTO command_records (id, session_id, raw_text, kind, valid, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			raw_text = EXCLUDED.raw_text,
			kind = EXCLUDED.kind,
			valid = EXCLUDED.valid,
			reason = EXCLUDED.reason
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.RawText,
		string(record.Kind),
		record.Valid,
		record.Reason,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save command record %s: %w", record.ID, err)
	}

	return nil
}

func (r *CommandRepository) List(ctx context.Context, sessionID string, limit int) ([]*models.CommandRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, session_id, raw_text, kind, valid, reason, created_at
		FROM command_records
		WHERE ($1 = '' OR session_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query command records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*models.CommandRecord, 0, limit)

	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate command records: %w", err)
	}

	return records, nil
}

func (r *CommandRepository) GetByID(ctx context.Context, id string) (*models.CommandRecord, error) {
	query := `
		SELECT id, session_id, raw_text, kind, valid, reason, created_at
		FROM command_records
		WHERE id = $1
	`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrCommandNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get command record %s: %w", id, err)
	}

	return record, nil
}

func scanRecord(scan func(dest ...any) error) (*models.CommandRecord, error) {
	var (
		record models.CommandRecord
		kind   string
	)

	err := scan(
		&record.ID,
		&record.SessionID,
		&record.RawText,
		&kind,
		&record.Valid,
		&record.Reason,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Kind = models.ActionKind(kind)

	return &record, nil
}
