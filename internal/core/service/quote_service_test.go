package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

type stubRequestRepo struct {
	requests map[string]*domain.QuoteRequest
	nextID   int
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.QuoteRequest)}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	r.nextID++
	clone := *req
	clone.ID = fmt.Sprintf("req_%d", r.nextID)
	r.requests[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.QuoteRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	copy := *req
	return &copy, nil
}

func (r *stubRequestRepo) List(_ context.Context, filter ports.RequestFilter) ([]*domain.QuoteRequest, error) {
	var out []*domain.QuoteRequest
	for _, req := range r.requests {
		if filter.Customer != "" && req.Customer != filter.Customer {
			continue
		}
		if filter.OpenOnly && !req.Status.IsOpen() {
			continue
		}
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		copy := *req
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubRequestRepo) RegisterQuote(_ context.Context, requestID string) error {
	req, ok := r.requests[requestID]
	if !ok || !req.Status.IsOpen() {
		return domain.ErrRequestClosed
	}
	req.QuotesReceived++
	req.Status = domain.RequestActive
	return nil
}

func (r *stubRequestRepo) Complete(_ context.Context, requestID string) error {
	req, ok := r.requests[requestID]
	if !ok || !req.Status.IsOpen() {
		return domain.ErrRequestClosed
	}
	req.Status = domain.RequestCompleted
	return nil
}

func (r *stubRequestRepo) Cancel(_ context.Context, requestID, customerID string) error {
	req, ok := r.requests[requestID]
	if !ok || req.Customer != customerID {
		return domain.ErrRequestNotFound
	}
	if !req.Status.IsOpen() {
		return domain.ErrRequestClosed
	}
	req.Status = domain.RequestCancelled
	return nil
}

type stubQuoteRepo struct {
	quotes map[string]*domain.Quote
	nextID int
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{quotes: make(map[string]*domain.Quote)}
}

func (r *stubQuoteRepo) Create(_ context.Context, quote *domain.Quote) (*domain.Quote, error) {
	r.nextID++
	clone := *quote
	clone.ID = fmt.Sprintf("quote_%d", r.nextID)
	r.quotes[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id string) (*domain.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	copy := *quote
	return &copy, nil
}

func (r *stubQuoteRepo) List(_ context.Context, filter ports.QuoteFilter) ([]*domain.Quote, error) {
	var out []*domain.Quote
	for _, quote := range r.quotes {
		if filter.Builder != "" && quote.Builder != filter.Builder {
			continue
		}
		if len(filter.RequestIDs) > 0 {
			found := false
			for _, id := range filter.RequestIDs {
				if quote.QuoteRequest == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		copy := *quote
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubQuoteRepo) SetStatus(_ context.Context, id string, from []domain.QuoteStatus, to domain.QuoteStatus, notes string) (*domain.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	matched := false
	for _, s := range from {
		if quote.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, domain.ErrInvalidTransition
	}
	quote.Status = to
	quote.CustomerNotes = notes
	copy := *quote
	return &copy, nil
}

type stubPlotRepo struct {
	plots map[string]*domain.Plot
}

func newStubPlotRepo() *stubPlotRepo {
	return &stubPlotRepo{plots: make(map[string]*domain.Plot)}
}

func (r *stubPlotRepo) Create(_ context.Context, plot *domain.Plot) (*domain.Plot, error) {
	clone := *plot
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("plot_%d", len(r.plots)+1)
	}
	r.plots[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubPlotRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Plot, error) {
	plot, ok := r.plots[id]
	if !ok || (ownerID != "" && plot.Owner != ownerID) {
		return nil, domain.ErrPlotNotFound
	}
	copy := *plot
	return &copy, nil
}

func (r *stubPlotRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Plot, error) {
	var out []*domain.Plot
	for _, plot := range r.plots {
		if plot.Owner == ownerID {
			copy := *plot
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubPlotRepo) Update(_ context.Context, plot *domain.Plot) error {
	existing, ok := r.plots[plot.ID]
	if !ok || existing.Owner != plot.Owner {
		return domain.ErrPlotNotFound
	}
	clone := *plot
	r.plots[plot.ID] = &clone
	return nil
}

func (r *stubPlotRepo) Delete(_ context.Context, id, ownerID string) error {
	plot, ok := r.plots[id]
	if !ok || plot.Owner != ownerID {
		return domain.ErrPlotNotFound
	}
	delete(r.plots, id)
	return nil
}

type stubEventSink struct {
	events []domain.QuoteEvent
}

func (s *stubEventSink) Enqueue(event domain.QuoteEvent) {
	s.events = append(s.events, event)
}

type quoteFixture struct {
	svc    *QuoteService
	reqs   *stubRequestRepo
	quotes *stubQuoteRepo
	plots  *stubPlotRepo
	events *stubEventSink
}

var (
	customer = ports.Actor{UserID: "cust_1", Role: domain.RoleCustomer}
	builder  = ports.Actor{UserID: "bldr_1", Role: domain.RoleBuilder}
)

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	f := &quoteFixture{
		reqs:   newStubRequestRepo(),
		quotes: newStubQuoteRepo(),
		plots:  newStubPlotRepo(),
		events: &stubEventSink{},
	}
	f.svc = NewQuoteService(f.reqs, f.quotes, f.plots, f.events, zerolog.Nop())

	_, err := f.plots.Create(context.Background(), &domain.Plot{
		ID:    "plot_1",
		Owner: customer.UserID,
	})
	if err != nil {
		t.Fatalf("plot setup failed: %v", err)
	}
	return f
}

func (f *quoteFixture) createRequest(t *testing.T) *domain.QuoteRequest {
	t.Helper()
	req, err := f.svc.CreateRequest(context.Background(), customer, ports.CreateRequestInput{
		Plot:        "plot_1",
		ProjectType: "residential",
		BudgetRange: domain.BudgetRange{Min: 100000, Max: 250000},
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	return req
}

func (f *quoteFixture) submitQuote(t *testing.T, requestID string) *domain.Quote {
	t.Helper()
	quote, err := f.svc.SubmitQuote(context.Background(), builder, ports.SubmitQuoteInput{
		QuoteRequest: requestID,
		Pricing:      domain.Pricing{Materials: 50000, Labor: 60000, Permits: 5000},
		Description:  "turnkey build",
	})
	if err != nil {
		t.Fatalf("SubmitQuote failed: %v", err)
	}
	return quote
}

func TestQuoteService_CreateRequest_Defaults(t *testing.T) {
	f := newQuoteFixture(t)

	req := f.createRequest(t)
	if req.Status != domain.RequestPending {
		t.Fatalf("expected pending status, got %s", req.Status)
	}
	if req.NumberOfFloors != 1 {
		t.Fatalf("expected floors default 1, got %d", req.NumberOfFloors)
	}
	if req.BudgetRange.Currency != "USD" {
		t.Fatalf("expected USD default, got %q", req.BudgetRange.Currency)
	}
	if req.ExpiresAt.IsZero() {
		t.Fatalf("expected expiry to be set")
	}
}

func TestQuoteService_CreateRequest_BuilderForbidden(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), builder, ports.CreateRequestInput{Plot: "plot_1"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuoteService_CreateRequest_InvalidBudget(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), customer, ports.CreateRequestInput{
		Plot:        "plot_1",
		BudgetRange: domain.BudgetRange{Min: 500000, Max: 100000},
	})
	if !errors.Is(err, domain.ErrInvalidBudgetRange) {
		t.Fatalf("expected ErrInvalidBudgetRange, got %v", err)
	}
}

func TestQuoteService_CreateRequest_ForeignPlot(t *testing.T) {
	f := newQuoteFixture(t)
	_, _ = f.plots.Create(context.Background(), &domain.Plot{ID: "plot_2", Owner: "someone_else"})

	_, err := f.svc.CreateRequest(context.Background(), customer, ports.CreateRequestInput{
		Plot:        "plot_2",
		BudgetRange: domain.BudgetRange{Min: 1, Max: 2},
	})
	if !errors.Is(err, domain.ErrPlotNotFound) {
		t.Fatalf("expected ErrPlotNotFound, got %v", err)
	}
}

func TestQuoteService_SubmitQuote_ActivatesRequest(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)

	quote := f.submitQuote(t, req.ID)
	if quote.Status != domain.QuoteSubmitted {
		t.Fatalf("expected submitted status, got %s", quote.Status)
	}
	if got := quote.Pricing.Total; got != 115000 {
		t.Fatalf("expected recomputed total 115000, got %v", got)
	}

	updated, _ := f.reqs.FindByID(context.Background(), req.ID)
	if updated.Status != domain.RequestActive {
		t.Fatalf("expected active request, got %s", updated.Status)
	}
	if updated.QuotesReceived != 1 {
		t.Fatalf("expected quotesReceived 1, got %d", updated.QuotesReceived)
	}
}

func TestQuoteService_SubmitQuote_TotalNeverTrusted(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)

	quote, err := f.svc.SubmitQuote(context.Background(), builder, ports.SubmitQuoteInput{
		QuoteRequest: req.ID,
		Pricing:      domain.Pricing{Materials: 10, Labor: 20, Total: 99999},
	})
	if err != nil {
		t.Fatalf("SubmitQuote failed: %v", err)
	}
	if quote.Pricing.Total != 30 {
		t.Fatalf("expected total 30, got %v", quote.Pricing.Total)
	}
}

func TestQuoteService_SubmitQuote_CustomerForbidden(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)

	_, err := f.svc.SubmitQuote(context.Background(), customer, ports.SubmitQuoteInput{QuoteRequest: req.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuoteService_SubmitQuote_ClosedRequest(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	if err := f.svc.CancelRequest(context.Background(), customer, req.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := f.svc.SubmitQuote(context.Background(), builder, ports.SubmitQuoteInput{QuoteRequest: req.ID})
	if !errors.Is(err, domain.ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
}

func TestQuoteService_AcceptQuote_CompletesRequest(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	quote := f.submitQuote(t, req.ID)

	accepted, err := f.svc.AcceptQuote(context.Background(), customer, quote.ID, "looks great")
	if err != nil {
		t.Fatalf("AcceptQuote failed: %v", err)
	}
	if accepted.Status != domain.QuoteAccepted {
		t.Fatalf("expected accepted quote, got %s", accepted.Status)
	}
	if accepted.CustomerNotes != "looks great" {
		t.Fatalf("expected notes to be stamped, got %q", accepted.CustomerNotes)
	}

	updated, _ := f.reqs.FindByID(context.Background(), req.ID)
	if updated.Status != domain.RequestCompleted {
		t.Fatalf("expected completed request, got %s", updated.Status)
	}
}

func TestQuoteService_AcceptQuote_SecondAcceptLoses(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	first := f.submitQuote(t, req.ID)
	second := f.submitQuote(t, req.ID)

	if _, err := f.svc.AcceptQuote(context.Background(), customer, first.ID, ""); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if _, err := f.svc.AcceptQuote(context.Background(), customer, second.ID, ""); !errors.Is(err, domain.ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed on second accept, got %v", err)
	}

	// The losing quote is untouched.
	remaining, _ := f.quotes.FindByID(context.Background(), second.ID)
	if remaining.Status != domain.QuoteSubmitted {
		t.Fatalf("expected losing quote to stay submitted, got %s", remaining.Status)
	}
}

func TestQuoteService_AcceptQuote_OnlyOwner(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	quote := f.submitQuote(t, req.ID)

	other := ports.Actor{UserID: "cust_2", Role: domain.RoleCustomer}
	if _, err := f.svc.AcceptQuote(context.Background(), other, quote.ID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestQuoteService_RejectQuote_LeavesRequestOpen(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	quote := f.submitQuote(t, req.ID)

	rejected, err := f.svc.RejectQuote(context.Background(), customer, quote.ID, "too high")
	if err != nil {
		t.Fatalf("RejectQuote failed: %v", err)
	}
	if rejected.Status != domain.QuoteRejected {
		t.Fatalf("expected rejected quote, got %s", rejected.Status)
	}

	// Other builders can still bid.
	updated, _ := f.reqs.FindByID(context.Background(), req.ID)
	if !updated.Status.IsOpen() {
		t.Fatalf("expected request to remain open, got %s", updated.Status)
	}
}

func TestQuoteService_RejectQuote_TerminalIsFinal(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	quote := f.submitQuote(t, req.ID)

	if _, err := f.svc.RejectQuote(context.Background(), customer, quote.ID, ""); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := f.svc.RejectQuote(context.Background(), customer, quote.ID, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestQuoteService_ListQuotes_RoleScoped(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	f.submitQuote(t, req.ID)

	mine, err := f.svc.ListQuotes(context.Background(), builder)
	if err != nil {
		t.Fatalf("builder list failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 builder quote, got %d", len(mine))
	}

	received, err := f.svc.ListQuotes(context.Background(), customer)
	if err != nil {
		t.Fatalf("customer list failed: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("expected 1 received quote, got %d", len(received))
	}

	stranger := ports.Actor{UserID: "cust_2", Role: domain.RoleCustomer}
	none, err := f.svc.ListQuotes(context.Background(), stranger)
	if err != nil {
		t.Fatalf("stranger list failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no quotes for stranger, got %d", len(none))
	}
}

func TestQuoteService_LifecycleEventsEmitted(t *testing.T) {
	f := newQuoteFixture(t)
	req := f.createRequest(t)
	quote := f.submitQuote(t, req.ID)
	if _, err := f.svc.AcceptQuote(context.Background(), customer, quote.ID, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if len(f.events.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(f.events.events))
	}
	if f.events.events[0].Action != domain.ActionSubmitted {
		t.Fatalf("expected submitted event first, got %s", f.events.events[0].Action)
	}
	if f.events.events[1].Action != domain.ActionAccepted {
		t.Fatalf("expected accepted event second, got %s", f.events.events[1].Action)
	}
}
