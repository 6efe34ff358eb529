package interpreter

import (
	"strings"

	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/models"
)

// Heuristic is a keyword-presence last-resort check, evaluated in order after
// rule dispatch fails. Heuristics trade precision for availability: each one
// builds a minimal action from configured defaults rather than from captures.
type Heuristic struct {
	Name      string
	Predicate func(lowered string) bool
	Build     func(defaults config.InterpreterConfig, rawText string) *models.Action
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}

	return false
}

func defaultHeuristics() []Heuristic {
	return []Heuristic{
		{
			Name: "create-file",
			Predicate: func(lowered string) bool {
				return containsAny(lowered, "create", "make") &&
					containsAny(lowered, "file", "document", "note", "txt")
			},
			Build: func(defaults config.InterpreterConfig, rawText string) *models.Action {
				return models.NewAction(models.KindFileCreate, map[string]any{
					"filename": defaults.DefaultFilename,
				}, rawText)
			},
		},
		{
			Name: "open-app",
			Predicate: func(lowered string) bool {
				return containsAny(lowered, "open", "launch", "start") &&
					containsAny(lowered, "app", "application", "browser", "editor", "program", "window")
			},
			Build: func(defaults config.InterpreterConfig, rawText string) *models.Action {
				return models.NewAction(models.KindOpenApp, map[string]any{
					"app_name": defaults.DefaultAppName,
				}, rawText)
			},
		},
		{
			Name: "screenshot",
			Predicate: func(lowered string) bool {
				return strings.Contains(lowered, "screenshot") ||
					(strings.Contains(lowered, "capture") && strings.Contains(lowered, "screen"))
			},
			Build: func(_ config.InterpreterConfig, rawText string) *models.Action {
				return models.NewAction(models.KindScreenshot, nil, rawText)
			},
		},
		{
			Name: "wait",
			Predicate: func(lowered string) bool {
				return containsAny(lowered, "wait", "pause", "sleep")
			},
			Build: func(defaults config.InterpreterConfig, rawText string) *models.Action {
				return models.NewAction(models.KindWait, map[string]any{
					"seconds": defaults.DefaultWaitSeconds,
				}, rawText)
			},
		},
	}
}
