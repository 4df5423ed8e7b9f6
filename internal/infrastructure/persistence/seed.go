package persistence

import (
	"context"
	"fmt"

	"github.com/kerp/backend/internal/domain/factory"
)

// DefaultFactories are the production sites every installation starts with
var DefaultFactories = []factory.Factory{
	{ID: 241, Name: "Stargard", IsActive: true},
	{ID: 276, Name: "Ottawa", IsActive: true},
	{ID: 260, Name: "Shanghai", IsActive: true},
}

// SeedFactories inserts the DefaultFactories that do not exist yet.
// Existing rows keep their name and state.
func SeedFactories(ctx context.Context, repo *GormFactoryRepository) error {
	for i := range DefaultFactories {
		f := DefaultFactories[i]
		if err := repo.CreateIfMissing(ctx, &f); err != nil {
			return fmt.Errorf("seed factory %d: %w", f.ID, err)
		}
	}
	return nil
}
