package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

const plotsCollection = "plots"

// PlotRepository implements ports.PlotRepository on MongoDB. Owner scoping is
// applied inside the query filter, never after the fetch.
type PlotRepository struct {
	coll *mongo.Collection
}

func NewPlotRepository(db *mongo.Database) *PlotRepository {
	return &PlotRepository{coll: db.Collection(plotsCollection)}
}

func (r *PlotRepository) Create(ctx context.Context, plot *domain.Plot) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	plot.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (r *PlotRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner"] = ownerID
	}

	var plot domain.Plot
	if err := r.coll.FindOne(ctx, filter).Decode(&plot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, err
	}
	return &plot, nil
}

func (r *PlotRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plots []*domain.Plot
	if err := cur.All(ctx, &plots); err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *PlotRepository) Update(ctx context.Context, plot *domain.Plot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": plot.ID, "owner": plot.Owner}, plot)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}

func (r *PlotRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}
