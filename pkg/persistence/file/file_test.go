package file

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(sessionID, rawText string, createdAt time.Time) *models.CommandRecord {
	return &models.CommandRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		RawText:   rawText,
		Kind:      models.KindOpenApp,
		Valid:     true,
		CreatedAt: createdAt,
	}
}

func TestSaveAndLoadCommand(t *testing.T) {
	ctx := context.Background()
	fp := NewPersistence("file://" + t.TempDir())

	record := newRecord("session-1", "open chrome", time.Now().UTC())
	require.NoError(t, fp.SaveCommand(ctx, record))

	loaded, err := fp.CommandByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.RawText, loaded.RawText)
	assert.Equal(t, record.Kind, loaded.Kind)
	assert.True(t, loaded.Valid)
}

func TestCommands_FilterSortLimit(t *testing.T) {
	ctx := context.Background()
	fp := NewPersistence(t.TempDir())

	base := time.Now().UTC().Add(-time.Hour)

	oldest := newRecord("session-1", "open chrome", base)
	middle := newRecord("session-1", "type hello", base.Add(time.Minute))
	newest := newRecord("session-1", "press enter", base.Add(2*time.Minute))
	other := newRecord("session-2", "click", base.Add(3*time.Minute))

	for _, record := range []*models.CommandRecord{oldest, middle, newest, other} {
		require.NoError(t, fp.SaveCommand(ctx, record))
	}

	records, err := fp.Commands(ctx, "session-1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first, other sessions excluded, limit applied.
	assert.Equal(t, newest.ID, records[0].ID)
	assert.Equal(t, middle.ID, records[1].ID)

	all, err := fp.Commands(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCommands_EmptyRoot(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	records, err := fp.Commands(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCommandByID_NotFound(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	_, err := fp.CommandByID(context.Background(), "missing")
	assert.ErrorIs(t, err, persistence.ErrCommandNotFound)
}

func TestSaveCommand_InvalidRecord(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	err := fp.SaveCommand(context.Background(), &models.CommandRecord{})
	assert.ErrorIs(t, err, persistence.ErrInvalidRecord)
}
