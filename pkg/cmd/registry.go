package cmd

import (
	"log/slog"

	"github.com/natctl/natctl/pkg/registry"
)

// NewRegistry creates the registry carrying the built-in executable kinds.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	return registry.Default(logger)
}
