package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// quoteValidity is the default window before a submitted quote lapses.
// Nothing transitions lapsed quotes to expired automatically; ValidUntil is
// advisory data, mirrored by the request's ExpiresAt.
const quoteValidity = 30 * 24 * time.Hour

// EventSink receives lifecycle audit events for asynchronous persistence.
type EventSink interface {
	Enqueue(event domain.QuoteEvent)
}

// QuoteService implements the server-authoritative quote lifecycle.
type QuoteService struct {
	requests ports.QuoteRequestRepository
	quotes   ports.QuoteRepository
	plots    ports.PlotRepository
	events   EventSink
	logger   zerolog.Logger
}

func NewQuoteService(
	requests ports.QuoteRequestRepository,
	quotes ports.QuoteRepository,
	plots ports.PlotRepository,
	events EventSink,
	logger zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		requests: requests,
		quotes:   quotes,
		plots:    plots,
		events:   events,
		logger:   logger,
	}
}

func (s *QuoteService) CreateRequest(ctx context.Context, actor ports.Actor, input ports.CreateRequestInput) (*domain.QuoteRequest, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	if input.BudgetRange.Min > input.BudgetRange.Max {
		return nil, domain.ErrInvalidBudgetRange
	}

	// The plot must exist and belong to the requesting customer.
	if _, err := s.plots.FindByID(ctx, input.Plot, actor.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.QuoteRequest{
		Customer:       actor.UserID,
		Plot:           input.Plot,
		ProjectType:    input.ProjectType,
		BuildingType:   input.BuildingType,
		NumberOfFloors: input.NumberOfFloors,
		TotalArea:      input.TotalArea,
		BudgetRange:    input.BudgetRange,
		Timeline:       input.Timeline,
		Requirements:   input.Requirements,
		Description:    input.Description,
		Preferences:    input.Preferences,
		Status:         domain.RequestPending,
		ExpiresAt:      domain.DefaultExpiry(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.NumberOfFloors <= 0 {
		req.NumberOfFloors = 1
	}
	if req.BudgetRange.Currency == "" {
		req.BudgetRange.Currency = "USD"
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("customer", actor.UserID).Msg("failed to create quote request")
		return nil, err
	}

	s.logger.Info().Str("request", created.ID).Str("customer", actor.UserID).Msg("quote request created")
	return created, nil
}

func (s *QuoteService) GetRequest(ctx context.Context, actor ports.Actor, id string) (*domain.QuoteRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Builders may inspect any request; customers only their own.
	if actor.Role != domain.RoleBuilder && req.Customer != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

func (s *QuoteService) ListRequests(ctx context.Context, actor ports.Actor, status string) ([]*domain.QuoteRequest, error) {
	filter := ports.RequestFilter{Status: status}
	if actor.Role == domain.RoleBuilder {
		filter.OpenOnly = true
	} else {
		filter.Customer = actor.UserID
	}
	return s.requests.List(ctx, filter)
}

func (s *QuoteService) CancelRequest(ctx context.Context, actor ports.Actor, id string) error {
	if err := s.requests.Cancel(ctx, id, actor.UserID); err != nil {
		return err
	}
	s.events.Enqueue(domain.QuoteEvent{
		QuoteRequest: id,
		Actor:        actor.UserID,
		Action:       domain.ActionCancelled,
		At:           time.Now().UTC(),
	})
	return nil
}

// SubmitQuote creates a builder's quote. The parent request is registered
// first via a conditional update, so a quote can never land on a completed or
// cancelled request; the insert follows only if the request was still open.
func (s *QuoteService) SubmitQuote(ctx context.Context, actor ports.Actor, input ports.SubmitQuoteInput) (*domain.Quote, error) {
	if actor.Role != domain.RoleBuilder {
		return nil, domain.ErrForbidden
	}

	if _, err := s.requests.FindByID(ctx, input.QuoteRequest); err != nil {
		return nil, err
	}

	if err := s.requests.RegisterQuote(ctx, input.QuoteRequest); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := &domain.Quote{
		QuoteRequest: input.QuoteRequest,
		Builder:      actor.UserID,
		Pricing:      input.Pricing,
		Timeline:     input.Timeline,
		Description:  input.Description,
		Methodology:  input.Methodology,
		Materials:    input.Materials,
		Terms:        input.Terms,
		ValidUntil:   now.Add(quoteValidity),
		Status:       domain.QuoteSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	quote.Pricing.Recompute()

	created, err := s.quotes.Create(ctx, quote)
	if err != nil {
		s.logger.Error().Err(err).Str("request", input.QuoteRequest).Msg("failed to create quote")
		return nil, err
	}

	s.events.Enqueue(domain.QuoteEvent{
		QuoteRequest: created.QuoteRequest,
		Quote:        created.ID,
		Actor:        actor.UserID,
		Action:       domain.ActionSubmitted,
		At:           now,
	})

	s.logger.Info().
		Str("quote", created.ID).
		Str("request", created.QuoteRequest).
		Str("builder", actor.UserID).
		Float64("total", created.Pricing.Total).
		Msg("quote submitted")

	return created, nil
}

func (s *QuoteService) ListQuotes(ctx context.Context, actor ports.Actor) ([]*domain.Quote, error) {
	if actor.Role == domain.RoleBuilder {
		return s.quotes.List(ctx, ports.QuoteFilter{Builder: actor.UserID})
	}

	// Customers see quotes submitted against their own requests.
	requests, err := s.requests.List(ctx, ports.RequestFilter{Customer: actor.UserID})
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	return s.quotes.List(ctx, ports.QuoteFilter{RequestIDs: ids})
}

// AcceptQuote accepts a quote for the owning customer. Completing the parent
// request with a conditional status update is the linearization point: of two
// concurrent accepts on the same request, exactly one wins and the loser
// surfaces ErrRequestClosed.
func (s *QuoteService) AcceptQuote(ctx context.Context, actor ports.Actor, quoteID, notes string) (*domain.Quote, error) {
	quote, req, err := s.loadForDecision(ctx, actor, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransitionTo(domain.QuoteAccepted) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.requests.Complete(ctx, req.ID); err != nil {
		return nil, err
	}

	accepted, err := s.quotes.SetStatus(ctx, quoteID,
		[]domain.QuoteStatus{domain.QuoteSubmitted, domain.QuoteViewed},
		domain.QuoteAccepted, notes)
	if err != nil {
		return nil, err
	}

	s.events.Enqueue(domain.QuoteEvent{
		QuoteRequest: req.ID,
		Quote:        quoteID,
		Actor:        actor.UserID,
		Action:       domain.ActionAccepted,
		At:           time.Now().UTC(),
	})

	s.logger.Info().Str("quote", quoteID).Str("request", req.ID).Msg("quote accepted")
	return accepted, nil
}

func (s *QuoteService) RejectQuote(ctx context.Context, actor ports.Actor, quoteID, notes string) (*domain.Quote, error) {
	quote, req, err := s.loadForDecision(ctx, actor, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransitionTo(domain.QuoteRejected) {
		return nil, domain.ErrInvalidTransition
	}

	rejected, err := s.quotes.SetStatus(ctx, quoteID,
		[]domain.QuoteStatus{domain.QuoteSubmitted, domain.QuoteViewed},
		domain.QuoteRejected, notes)
	if err != nil {
		return nil, err
	}

	s.events.Enqueue(domain.QuoteEvent{
		QuoteRequest: req.ID,
		Quote:        quoteID,
		Actor:        actor.UserID,
		Action:       domain.ActionRejected,
		At:           time.Now().UTC(),
	})

	return rejected, nil
}

// loadForDecision fetches a quote with its parent request and verifies the
// actor owns the request.
func (s *QuoteService) loadForDecision(ctx context.Context, actor ports.Actor, quoteID string) (*domain.Quote, *domain.QuoteRequest, error) {
	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	req, err := s.requests.FindByID(ctx, quote.QuoteRequest)
	if err != nil {
		return nil, nil, err
	}
	if req.Customer != actor.UserID {
		return nil, nil, domain.ErrForbidden
	}
	return quote, req, nil
}
