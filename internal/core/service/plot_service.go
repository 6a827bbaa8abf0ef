package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// PlotService implements owner-scoped plot use cases. Every save path
// recomputes the derived area so it can never diverge from the dimensions.
type PlotService struct {
	repo   ports.PlotRepository
	logger zerolog.Logger
}

func NewPlotService(repo ports.PlotRepository, logger zerolog.Logger) *PlotService {
	return &PlotService{repo: repo, logger: logger}
}

func (s *PlotService) Create(ctx context.Context, ownerID string, input ports.PlotInput) (*domain.Plot, error) {
	now := time.Now().UTC()
	plot := &domain.Plot{
		Owner:      ownerID,
		Address:    input.Address,
		Dimensions: input.Dimensions,
		SoilType:   input.SoilType,
		Utilities:  input.Utilities,
		Zoning:     input.Zoning,
		Topography: input.Topography,
		Notes:      input.Notes,
		Status:     domain.PlotActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyPlotDefaults(plot)
	if input.Status != "" {
		plot.Status = domain.PlotStatus(input.Status)
	}
	plot.RecomputeArea()

	created, err := s.repo.Create(ctx, plot)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", ownerID).Msg("failed to create plot")
		return nil, err
	}

	s.logger.Info().Str("plot", created.ID).Str("owner", ownerID).Float64("area", created.Area).Msg("plot created")
	return created, nil
}

func (s *PlotService) Get(ctx context.Context, id, ownerID string) (*domain.Plot, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

func (s *PlotService) List(ctx context.Context, ownerID string) ([]*domain.Plot, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *PlotService) Update(ctx context.Context, id, ownerID string, input ports.PlotInput) (*domain.Plot, error) {
	plot, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	plot.Address = input.Address
	plot.Dimensions = input.Dimensions
	plot.SoilType = input.SoilType
	plot.Utilities = input.Utilities
	plot.Zoning = input.Zoning
	plot.Topography = input.Topography
	plot.Notes = input.Notes
	if input.Status != "" {
		plot.Status = domain.PlotStatus(input.Status)
	}
	applyPlotDefaults(plot)
	plot.RecomputeArea()
	plot.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *PlotService) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}

func applyPlotDefaults(p *domain.Plot) {
	if p.Address.Country == "" {
		p.Address.Country = "USA"
	}
	if p.Dimensions.Unit == "" {
		p.Dimensions.Unit = "feet"
	}
	if p.SoilType == "" {
		p.SoilType = "unknown"
	}
	if p.Topography == "" {
		p.Topography = "flat"
	}
}
