package domain

import (
	"errors"
	"time"
)

// QuoteStatus represents the lifecycle state of a builder's quote.
type QuoteStatus string

const (
	QuoteSubmitted QuoteStatus = "submitted"
	QuoteViewed    QuoteStatus = "viewed"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteExpired   QuoteStatus = "expired"
)

// validQuoteTransitions defines the allowed state machine transitions.
// accepted, rejected and expired are terminal.
var validQuoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteSubmitted: {QuoteViewed, QuoteAccepted, QuoteRejected, QuoteExpired},
	QuoteViewed:    {QuoteAccepted, QuoteRejected, QuoteExpired},
}

var ErrQuoteNotFound = errors.New("quote not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status is valid.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range validQuoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Pricing is the cost breakdown of a quote. Total is derived: it is always
// recomputed as the sum of the six components before persisting and never
// trusted from client input.
type Pricing struct {
	Materials   float64 `json:"materials" bson:"materials"`
	Labor       float64 `json:"labor" bson:"labor"`
	Permits     float64 `json:"permits" bson:"permits"`
	Equipment   float64 `json:"equipment" bson:"equipment"`
	Contingency float64 `json:"contingency" bson:"contingency"`
	Other       float64 `json:"other" bson:"other"`
	Total       float64 `json:"total" bson:"total"`
}

// Recompute overwrites Total with the component sum.
func (p *Pricing) Recompute() {
	p.Total = p.Materials + p.Labor + p.Permits + p.Equipment + p.Contingency + p.Other
}

// Milestone is a named point in a quote's construction schedule.
type Milestone struct {
	Name        string    `json:"name" bson:"name"`
	Date        time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
}

// QuoteTimeline is the builder's proposed schedule.
type QuoteTimeline struct {
	StartDate      time.Time   `json:"startDate" bson:"start_date"`
	EndDate        time.Time   `json:"endDate" bson:"end_date"`
	DurationMonths int         `json:"durationMonths" bson:"duration_months"`
	Milestones     []Milestone `json:"milestones,omitempty" bson:"milestones,omitempty"`
}

// MaterialSpec is one line item of the builder's materials list.
type MaterialSpec struct {
	Name          string  `json:"name" bson:"name"`
	Specification string  `json:"specification,omitempty" bson:"specification,omitempty"`
	Quantity      float64 `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Unit          string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// QuoteTerms are the commercial conditions attached to a quote.
type QuoteTerms struct {
	PaymentSchedule string `json:"paymentSchedule,omitempty" bson:"payment_schedule,omitempty"`
	Warranty        string `json:"warranty,omitempty" bson:"warranty,omitempty"`
	Insurance       string `json:"insurance,omitempty" bson:"insurance,omitempty"`
	AdditionalTerms string `json:"additionalTerms,omitempty" bson:"additional_terms,omitempty"`
}

// Quote is a builder's priced bid against a single quote request.
type Quote struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	QuoteRequest string `json:"quoteRequest" bson:"quote_request"`
	Builder      string `json:"builder" bson:"builder"`

	Pricing     Pricing        `json:"pricing" bson:"pricing"`
	Timeline    QuoteTimeline  `json:"timeline" bson:"timeline"`
	Description string         `json:"description" bson:"description"`
	Methodology string         `json:"methodology,omitempty" bson:"methodology,omitempty"`
	Materials   []MaterialSpec `json:"materials,omitempty" bson:"materials,omitempty"`
	Terms       QuoteTerms     `json:"terms" bson:"terms"`

	ValidUntil time.Time   `json:"validUntil" bson:"valid_until"`
	Status     QuoteStatus `json:"status" bson:"status"`

	CustomerNotes string     `json:"customerNotes,omitempty" bson:"customer_notes,omitempty"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty" bson:"accepted_at,omitempty"`
	RejectedAt    *time.Time `json:"rejectedAt,omitempty" bson:"rejected_at,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
