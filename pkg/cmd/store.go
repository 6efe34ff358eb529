package cmd

import (
	"fmt"

	"github.com/natctl/natctl/pkg/store"
)

// NewStore creates the session store for a URL ("memory://", "redis://...").
func NewStore(storeURL string) store.Store {
	s, err := store.NewFromURL(storeURL)
	if err != nil {
		panic(fmt.Errorf("failed to create session store: %w", err))
	}

	return s
}
