package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// CreateRequestInput carries a customer's new quote request.
type CreateRequestInput struct {
	Plot           string
	ProjectType    string
	BuildingType   string
	NumberOfFloors int
	TotalArea      float64
	BudgetRange    domain.BudgetRange
	Timeline       domain.ProjectTimeline
	Requirements   domain.ProjectRequirements
	Description    string
	Preferences    domain.ProjectPreferences
}

// SubmitQuoteInput carries a builder's bid. Pricing.Total is recomputed
// server-side regardless of what the caller set.
type SubmitQuoteInput struct {
	QuoteRequest string
	Pricing      domain.Pricing
	Timeline     domain.QuoteTimeline
	Description  string
	Methodology  string
	Materials    []domain.MaterialSpec
	Terms        domain.QuoteTerms
}

// Actor identifies the authenticated caller for RBAC decisions.
type Actor struct {
	UserID string
	Role   string
}

// QuoteService defines the quote-request/quote lifecycle use cases.
type QuoteService interface {
	CreateRequest(ctx context.Context, actor Actor, input CreateRequestInput) (*domain.QuoteRequest, error)
	GetRequest(ctx context.Context, actor Actor, id string) (*domain.QuoteRequest, error)
	// ListRequests returns the caller's own requests for customers, and open
	// requests for builders.
	ListRequests(ctx context.Context, actor Actor, status string) ([]*domain.QuoteRequest, error)
	CancelRequest(ctx context.Context, actor Actor, id string) error

	// SubmitQuote creates a quote (builder only) and atomically registers it
	// on the parent request: quotesReceived+1, status → active.
	SubmitQuote(ctx context.Context, actor Actor, input SubmitQuoteInput) (*domain.Quote, error)
	// ListQuotes returns the builder's own quotes, or the quotes against the
	// customer's requests.
	ListQuotes(ctx context.Context, actor Actor) ([]*domain.Quote, error)
	// AcceptQuote accepts a quote on behalf of the owning customer and
	// completes the parent request. At most one quote per request can ever be
	// accepted.
	AcceptQuote(ctx context.Context, actor Actor, quoteID, notes string) (*domain.Quote, error)
	// RejectQuote rejects a quote on behalf of the owning customer.
	RejectQuote(ctx context.Context, actor Actor, quoteID, notes string) (*domain.Quote, error)
}
