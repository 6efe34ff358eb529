// Package validator checks structured actions and raw JSON payloads for shape
// correctness before they are handed to an executor. Failures are data
// (ValidationOutcome), never errors: callers are not expected to handle
// validation exceptions.
package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/registry"
)

type Validator struct {
	registry *registry.Registry
	logger   *slog.Logger
}

func New(reg *registry.Registry, logger *slog.Logger) *Validator {
	return &Validator{
		registry: reg,
		logger:   logger.With("module", "validator"),
	}
}

// ValidateDocument validates an untyped value as produced by an external
// model or decoded from a request body. On success the outcome's Normalized
// field carries the typed Action.
func (v *Validator) ValidateDocument(document any) models.ValidationOutcome {
	switch value := document.(type) {
	case nil:
		return models.Invalid("action is empty")
	case *models.Action:
		if value == nil {
			return models.Invalid("action is empty")
		}

		return v.Validate(value)
	case map[string]any:
		if len(value) == 0 {
			return models.Invalid("action is empty")
		}

		action := models.FromMap(value)

		outcome := v.Validate(action)
		if outcome.IsValid {
			outcome.Normalized = action
		}

		return outcome
	default:
		return models.Invalid(fmt.Sprintf("action has wrong type %T", document))
	}
}

// Validate checks one action against the closed kind set and its per-kind
// required parameters. Checks run in a fixed order so the first failure
// reported is deterministic. Validation mutates nothing; validating the same
// action twice yields identical outcomes.
func (v *Validator) Validate(action *models.Action) models.ValidationOutcome {
	if action == nil {
		return models.Invalid("action is empty")
	}

	if action.Kind == "" {
		return models.Invalid("missing kind")
	}

	spec, ok := v.registry.Kind(string(action.Kind))
	if !ok {
		return models.Invalid(fmt.Sprintf("invalid kind: %s", action.Kind))
	}

	for _, name := range spec.Required {
		if !hasNonEmptyParameter(action, name) {
			return models.Invalid(fmt.Sprintf("%s action requires parameter %q", action.Kind, name))
		}
	}

	if spec.RequiredPrefix != "" && !hasParameterWithPrefix(action, spec.RequiredPrefix) {
		return models.Invalid(fmt.Sprintf(
			"%s action requires at least one parameter named %q...", action.Kind, spec.RequiredPrefix,
		))
	}

	return models.Valid()
}

func hasNonEmptyParameter(action *models.Action, name string) bool {
	value, ok := action.Parameters[name]
	if !ok || value == nil {
		return false
	}

	if text, isString := value.(string); isString {
		return strings.TrimSpace(text) != ""
	}

	return true
}

func hasParameterWithPrefix(action *models.Action, prefix string) bool {
	for name, value := range action.Parameters {
		if !strings.HasPrefix(name, prefix) || value == nil {
			continue
		}

		if text, isString := value.(string); isString && strings.TrimSpace(text) == "" {
			continue
		}

		return true
	}

	return false
}
