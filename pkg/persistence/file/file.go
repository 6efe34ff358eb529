// Package file provides file-based command history for development and tests.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence"
)

// Persistence stores one JSON file per command record under root/commands.
type Persistence struct {
	root string
}

func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

func (fp *Persistence) commandsDir() string {
	return filepath.Join(fp.root, "commands")
}

func (fp *Persistence) SaveCommand(_ context.Context, record *models.CommandRecord) error {
	if record == nil || record.ID == "" {
		return persistence.ErrInvalidRecord
	}

	if err := os.MkdirAll(fp.commandsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create commands directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal command record: %w", err)
	}

	path := filepath.Join(fp.commandsDir(), record.ID+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write command record: %w", err)
	}

	return nil
}

func (fp *Persistence) Commands(_ context.Context, sessionID string, limit int) ([]*models.CommandRecord, error) {
	entries, err := os.ReadDir(fp.commandsDir())
	if os.IsNotExist(err) {
		return []*models.CommandRecord{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read commands directory: %w", err)
	}

	records := make([]*models.CommandRecord, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		record, err := fp.readRecord(filepath.Join(fp.commandsDir(), entry.Name()))
		if err != nil {
			return nil, err
		}

		if sessionID != "" && record.SessionID != sessionID {
			continue
		}

		records = append(records, record)
	}

	sort.Slice(records, func(a, b int) bool {
		return records[a].CreatedAt.After(records[b].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

func (fp *Persistence) CommandByID(_ context.Context, id string) (*models.CommandRecord, error) {
	path := filepath.Join(fp.commandsDir(), id+".json")

	record, err := fp.readRecord(path)
	if os.IsNotExist(err) {
		return nil, persistence.ErrCommandNotFound
	}

	return record, err
}

func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

func (fp *Persistence) readRecord(path string) (*models.CommandRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record models.CommandRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse command record %s: %w", path, err)
	}

	return &record, nil
}
