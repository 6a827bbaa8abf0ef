package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// AdvisorPlot summarizes the property shown to the budget advisor.
type AdvisorPlot struct {
	Title       string
	City        string
	State       string
	AreaSqFt    float64
	PlotType    string
	Description string
}

// AdvisorProject summarizes the intended build.
type AdvisorProject struct {
	ProjectType  string
	Timeline     string
	BudgetRange  string
	Requirements string
	QualityLevel string
}

// AdvisorService produces LLM-backed budget opinions and persists each
// consultation.
type AdvisorService interface {
	// BudgetOpinion returns ErrAdvisorUnavailable when no API key is
	// configured and ErrAdvisorBadReply when the model's output cannot be
	// parsed into a structured opinion.
	BudgetOpinion(ctx context.Context, userID string, plot AdvisorPlot, project AdvisorProject) (*domain.BudgetAnalysis, error)
	History(ctx context.Context, userID string) ([]*domain.BudgetAnalysis, error)
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
}
