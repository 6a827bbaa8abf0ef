package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// PlotInput carries the writable fields of a plot. Area is intentionally
// absent: it is always derived server-side from the dimensions.
type PlotInput struct {
	Address    domain.PlotAddress
	Dimensions domain.PlotDimensions
	SoilType   string
	Utilities  domain.PlotUtilities
	Zoning     string
	Topography string
	Notes      string
	Status     string
}

// PlotService defines owner-scoped use cases over plots.
type PlotService interface {
	Create(ctx context.Context, ownerID string, input PlotInput) (*domain.Plot, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Plot, error)
	List(ctx context.Context, ownerID string) ([]*domain.Plot, error)
	Update(ctx context.Context, id, ownerID string, input PlotInput) (*domain.Plot, error)
	Delete(ctx context.Context, id, ownerID string) error
}
