package seriesRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawfolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSeriesRepo is the Mongo-backed recurring-series repository.
type MongoSeriesRepo struct {
	coll *mongo.Collection
}

// NewMongoSeriesRepo wires the repository to the recurring_series collection.
func NewMongoSeriesRepo(db *mongo.Database) *MongoSeriesRepo {
	return &MongoSeriesRepo{coll: db.Collection("recurring_series")}
}

func (repo *MongoSeriesRepo) Create(ctx context.Context, series *models.RecurringSeries) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, series); err != nil {
		return fmt.Errorf("error creating recurring series: %w", err)
	}
	return nil
}

func (repo *MongoSeriesRepo) GetByID(ctx context.Context, seriesID string) (*models.RecurringSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var series models.RecurringSeries
	err := repo.coll.FindOne(ctx, bson.M{"id": seriesID}).Decode(&series)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("series %s: %w", seriesID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching series %s: %w", seriesID, err)
	}
	return &series, nil
}

func (repo *MongoSeriesRepo) Update(ctx context.Context, series *models.RecurringSeries) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": series.ID}, bson.M{"$set": series})
	if err != nil {
		return fmt.Errorf("error updating series %s: %w", series.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("series %s: %w", series.ID, ErrNotFound)
	}
	return nil
}

func (repo *MongoSeriesRepo) UpdateCounters(ctx context.Context, seriesID string, completed, canceled, upcoming int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"completed_visits": completed,
		"canceled_visits":  canceled,
		"upcoming_visits":  upcoming,
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": seriesID}, update)
	if err != nil {
		return fmt.Errorf("error updating series %s counters: %w", seriesID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("series %s: %w", seriesID, ErrNotFound)
	}
	return nil
}
