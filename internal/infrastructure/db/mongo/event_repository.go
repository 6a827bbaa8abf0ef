package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

const eventsCollection = "quote_events"

// EventRepository persists quote lifecycle events to the quote_events audit
// collection.
type EventRepository struct {
	db *mongo.Database
}

func NewEventRepository(db *mongo.Database) ports.QuoteEventRecorder {
	return &EventRepository{db: db}
}

func (r *EventRepository) Record(ctx context.Context, event *domain.QuoteEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":           event.ID,
		"quote_request": event.QuoteRequest,
		"actor":         event.Actor,
		"action":        string(event.Action),
		"at":            event.At.UTC(),
		"recorded_at":   time.Now().UTC(),
	}
	if event.Quote != "" {
		doc["quote"] = event.Quote
	}

	_, err := r.db.Collection(eventsCollection).InsertOne(ctx, doc)
	return err
}
