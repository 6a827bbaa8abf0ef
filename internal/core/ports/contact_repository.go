package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
}

// AnalysisRepository persists budget advisor consultations.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.BudgetAnalysis) (*domain.BudgetAnalysis, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.BudgetAnalysis, error)
}
