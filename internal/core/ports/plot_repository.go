package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// PlotRepository defines persistence for plots. All lookups except Create are
// owner-scoped: a non-empty ownerID narrows the query so customers can never
// read or mutate another customer's plots.
type PlotRepository interface {
	Create(ctx context.Context, plot *domain.Plot) (*domain.Plot, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Plot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error)
	Update(ctx context.Context, plot *domain.Plot) error
	Delete(ctx context.Context, id, ownerID string) error
}
