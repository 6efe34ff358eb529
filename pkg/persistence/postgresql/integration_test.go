package postgresql_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence"
	"github.com/natctl/natctl/pkg/persistence/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	t.Cleanup(cancel)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("natctl_test"),
			postgres.WithUsername("natctl"),
			postgres.WithPassword("natctl"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	p, err := postgresql.NewPersistence(ctx, slog.Default(), databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() { _ = p.Close(ctx) })

	return p, ctx
}

func newRecord(sessionID, rawText string, createdAt time.Time) *models.CommandRecord {
	return &models.CommandRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		RawText:   rawText,
		Kind:      models.KindTypeText,
		Valid:     true,
		CreatedAt: createdAt,
	}
}

func TestPersistence_SaveAndGet(t *testing.T) {
	p, ctx := setupTestDB(t)

	record := newRecord("session-a", "type hello", time.Now().UTC())
	require.NoError(t, p.SaveCommand(ctx, record))

	loaded, err := p.CommandByID(ctx, record.ID)
	require.NoError(t, err)

	assert.Equal(t, record.RawText, loaded.RawText)
	assert.Equal(t, record.Kind, loaded.Kind)
	assert.True(t, loaded.Valid)
}

func TestPersistence_SaveIsUpsert(t *testing.T) {
	p, ctx := setupTestDB(t)

	record := newRecord("session-b", "open chrome", time.Now().UTC())
	require.NoError(t, p.SaveCommand(ctx, record))

	record.Valid = false
	record.Reason = "invalid kind: open_chrome"
	require.NoError(t, p.SaveCommand(ctx, record))

	loaded, err := p.CommandByID(ctx, record.ID)
	require.NoError(t, err)

	assert.False(t, loaded.Valid)
	assert.Equal(t, "invalid kind: open_chrome", loaded.Reason)
}

func TestPersistence_ListBySession(t *testing.T) {
	p, ctx := setupTestDB(t)

	session := "session-" + uuid.New().String()
	base := time.Now().UTC().Add(-time.Hour)

	for offset := range 3 {
		record := newRecord(session, "wait 1", base.Add(time.Duration(offset)*time.Minute))
		require.NoError(t, p.SaveCommand(ctx, record))
	}

	records, err := p.Commands(ctx, session, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].CreatedAt.After(records[1].CreatedAt))
}

func TestPersistence_GetMissing(t *testing.T) {
	p, ctx := setupTestDB(t)

	_, err := p.CommandByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, persistence.ErrCommandNotFound)
}

func TestPersistence_HealthCheck(t *testing.T) {
	p, ctx := setupTestDB(t)

	require.NoError(t, p.HealthCheck(ctx))
}
