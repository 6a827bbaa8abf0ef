package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// RequestFilter narrows quote request listings.
type RequestFilter struct {
	Customer string // non-empty: only this customer's requests
	Status   string // optional status filter
	OpenOnly bool   // true: pending|active only (builder browse)
}

// QuoteRequestRepository defines persistence for quote requests.
type QuoteRequestRepository interface {
	Create(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error)
	FindByID(ctx context.Context, id string) (*domain.QuoteRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*domain.QuoteRequest, error)

	// RegisterQuote atomically increments quotesReceived and moves the request
	// to active, iff the request is still open. Returns ErrRequestClosed when
	// the conditional update matches nothing.
	RegisterQuote(ctx context.Context, requestID string) error

	// Complete moves an open request to completed iff it is still open. This
	// conditional update is the linearization point that keeps a request from
	// ever accepting two quotes.
	Complete(ctx context.Context, requestID string) error

	// Cancel moves an open request to cancelled, scoped to its owning customer.
	Cancel(ctx context.Context, requestID, customerID string) error
}

// QuoteFilter narrows quote listings.
type QuoteFilter struct {
	Builder    string   // non-empty: only this builder's quotes
	RequestIDs []string // non-empty: quotes against these requests
}

// QuoteRepository defines persistence for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]*domain.Quote, error)

	// SetStatus conditionally transitions a quote from one of the given
	// current statuses, stamping the decision fields. Returns
	// ErrInvalidTransition when the quote is not in any of the from statuses.
	SetStatus(ctx context.Context, id string, from []domain.QuoteStatus, to domain.QuoteStatus, notes string) (*domain.Quote, error)
}

// QuoteEventRecorder persists lifecycle audit events.
type QuoteEventRecorder interface {
	Record(ctx context.Context, event *domain.QuoteEvent) error
}
