package domain

import "time"

// QuoteAction is the kind of lifecycle change a quote event records.
type QuoteAction string

const (
	ActionSubmitted QuoteAction = "submitted"
	ActionAccepted  QuoteAction = "accepted"
	ActionRejected  QuoteAction = "rejected"
	ActionCancelled QuoteAction = "cancelled"
)

// QuoteEvent is an append-only audit record of a quote lifecycle change.
// Events are written asynchronously; losing one never fails the operation
// that produced it.
type QuoteEvent struct {
	ID           string
	QuoteRequest string
	Quote        string
	Actor        string
	Action       QuoteAction
	At           time.Time
}
