// Package registry holds the closed set of executable action kinds and their
// parameter requirements.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/xeipuuv/gojsonschema"
)

// KindSpec describes one executable action kind: which parameters the
// validator requires, and an optional JSON schema applied to parameter
// payloads arriving over the API.
type KindSpec struct {
	ID          string
	Description string

	// Required lists parameter names that must be present and non-empty.
	Required []string

	// RequiredPrefix, when set, demands at least one parameter whose name
	// starts with the prefix ("key" for hotkey combinations).
	RequiredPrefix string

	// Schema is a JSON schema document for the parameters object. Nil skips
	// schema checking.
	Schema map[string]any
}

// Registry maps kind IDs to their specs. Registration order is preserved so
// listings stay deterministic.
type Registry struct {
	logger *slog.Logger
	kinds  map[string]KindSpec
	order  []string
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		kinds:  make(map[string]KindSpec),
	}
}

func (r *Registry) RegisterKind(spec KindSpec) {
	if _, exists := r.kinds[spec.ID]; !exists {
		r.order = append(r.order, spec.ID)
	}

	r.kinds[spec.ID] = spec
}

// Kind returns the spec for a kind ID.
func (r *Registry) Kind(id string) (KindSpec, bool) {
	spec, ok := r.kinds[id]

	return spec, ok
}

// KindIDs returns all registered kind IDs in registration order.
func (r *Registry) KindIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)

	return ids
}

// HealthCheck reports whether the registry carries any kinds.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.kinds) == 0 {
		return "No action kinds registered", false
	}

	return fmt.Sprintf("%d action kinds registered", len(r.kinds)), true
}

// ValidateParameters checks a parameters object against the kind's JSON
// schema. Kinds without a schema pass unchecked.
func (r *Registry) ValidateParameters(kindID string, parameters map[string]any) error {
	spec, ok := r.kinds[kindID]
	if !ok {
		return fmt.Errorf("action kind '%s' not registered", kindID)
	}

	if spec.Schema == nil {
		return nil
	}

	if parameters == nil {
		parameters = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(spec.Schema)
	dataLoader := gojsonschema.NewGoLoader(parameters)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed for kind '%s': %w", kindID, err)
	}

	if !result.Valid() {
		for _, desc := range result.Errors() {
			r.logger.Warn("Parameter schema violation",
				"kind", kindID,
				"field", desc.Field(),
				"description", desc.Description(),
			)
		}

		return fmt.Errorf("parameters for kind '%s' do not match schema: %s", kindID, result.Errors()[0].String())
	}

	return nil
}
