package registry

import (
	"log/slog"

	"github.com/natctl/natctl/pkg/models"
)

// Default builds a registry carrying the closed set of executable kinds.
// Interpretation-only kinds (sequence, unknown, invalid, file_create) are
// deliberately absent: handing one to an executor is always a caller bug.
func Default(logger *slog.Logger) *Registry {
	registry := NewRegistry(logger)

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindOpenApp),
		Description: "Launch or focus an application",
		Required:    []string{"app_name"},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"app_name": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"app_name"},
		},
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindTypeText),
		Description: "Type literal text into the focused control",
		Required:    []string{"text"},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"text"},
		},
	})

	registry.RegisterKind(KindSpec{
		ID:             string(models.KindHotkey),
		Description:    "Press a key combination",
		RequiredPrefix: "key",
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindPressKey),
		Description: "Press a single key",
		Required:    []string{"key"},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"key"},
		},
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindClick),
		Description: "Click at the current or named target",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"target": map[string]any{"type": "string"},
			},
		},
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindWait),
		Description: "Pause between actions",
		Required:    []string{"seconds"},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"seconds": map[string]any{
					"oneOf": []map[string]any{
						{"type": "number", "minimum": 0},
						{"type": "string", "pattern": `^[0-9]+(\.[0-9]+)?$`},
					},
				},
			},
			"required": []string{"seconds"},
		},
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindScreenshot),
		Description: "Capture the screen",
	})

	registry.RegisterKind(KindSpec{
		ID:          string(models.KindDone),
		Description: "No-op terminator",
	})

	return registry
}
