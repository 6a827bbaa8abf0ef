package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

const (
	requestsCollection = "quote_requests"
	quotesCollection   = "quotes"
)

// openStatuses are the request states that still admit quotes.
var openStatuses = bson.A{string(domain.RequestPending), string(domain.RequestActive)}

// QuoteRequestRepository implements ports.QuoteRequestRepository. The
// lifecycle writes are single-document conditional updates: the filter names
// the statuses the transition is valid from, so a lost race surfaces as
// MatchedCount == 0 instead of a silent double transition.
type QuoteRequestRepository struct {
	coll *mongo.Collection
}

func NewQuoteRequestRepository(db *mongo.Database) *QuoteRequestRepository {
	return &QuoteRequestRepository{coll: db.Collection(requestsCollection)}
}

func (r *QuoteRequestRepository) Create(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *QuoteRequestRepository) FindByID(ctx context.Context, id string) (*domain.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.QuoteRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *QuoteRequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*domain.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Customer != "" {
		query["customer"] = filter.Customer
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	} else if filter.OpenOnly {
		query["status"] = bson.M{"$in": openStatuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []*domain.QuoteRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// RegisterQuote increments quotesReceived and activates the request in one
// atomic write, conditional on the request still being open.
func (r *QuoteRequestRepository) RegisterQuote(ctx context.Context, requestID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": requestID, "status": bson.M{"$in": openStatuses}}
	update := bson.M{
		"$inc": bson.M{"quotes_received": 1},
		"$set": bson.M{
			"status":     string(domain.RequestActive),
			"updated_at": time.Now().UTC(),
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestClosed
	}
	return nil
}

func (r *QuoteRequestRepository) Complete(ctx context.Context, requestID string) error {
	return r.transition(ctx, requestID, "", domain.RequestCompleted)
}

func (r *QuoteRequestRepository) Cancel(ctx context.Context, requestID, customerID string) error {
	return r.transition(ctx, requestID, customerID, domain.RequestCancelled)
}

func (r *QuoteRequestRepository) transition(ctx context.Context, requestID, customerID string, to domain.RequestStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": requestID, "status": bson.M{"$in": openStatuses}}
	if customerID != "" {
		filter["customer"] = customerID
	}
	update := bson.M{"$set": bson.M{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestClosed
	}
	return nil
}

// EnsureIndexes creates the listing indexes on quote_requests.
func (r *QuoteRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// QuoteRepository implements ports.QuoteRepository on MongoDB.
type QuoteRepository struct {
	coll *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{coll: db.Collection(quotesCollection)}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	quote.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var quote domain.Quote
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&quote); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) List(ctx context.Context, filter ports.QuoteFilter) ([]*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Builder != "" {
		query["builder"] = filter.Builder
	}
	if len(filter.RequestIDs) > 0 {
		query["quote_request"] = bson.M{"$in": filter.RequestIDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var quotes []*domain.Quote
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// SetStatus conditionally transitions the quote and stamps the decision
// fields. The from statuses go into the filter, making the transition atomic.
func (r *QuoteRepository) SetStatus(ctx context.Context, id string, from []domain.QuoteStatus, to domain.QuoteStatus, notes string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fromValues := make(bson.A, 0, len(from))
	for _, s := range from {
		fromValues = append(fromValues, string(s))
	}

	now := time.Now().UTC()
	set := bson.M{"status": string(to), "updated_at": now}
	if notes != "" {
		set["customer_notes"] = notes
	}
	switch to {
	case domain.QuoteAccepted:
		set["accepted_at"] = now
	case domain.QuoteRejected:
		set["rejected_at"] = now
	}

	filter := bson.M{"_id": id, "status": bson.M{"$in": fromValues}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var quote domain.Quote
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&quote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, err
	}
	return &quote, nil
}

// EnsureIndexes creates the listing indexes on quotes.
func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "quote_request", Value: 1}, {Key: "builder", Value: 1}}},
		{Keys: bson.D{{Key: "builder", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
