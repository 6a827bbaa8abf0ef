package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

const (
	contactCollection  = "contact_messages"
	analysisCollection = "budget_analyses"
)

// ContactRepository implements ports.ContactRepository on MongoDB.
type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	msg.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// AnalysisRepository implements ports.AnalysisRepository on MongoDB.
type AnalysisRepository struct {
	coll *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{coll: db.Collection(analysisCollection)}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.BudgetAnalysis) (*domain.BudgetAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	analysis.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BudgetAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var analyses []*domain.BudgetAnalysis
	if err := cur.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}
