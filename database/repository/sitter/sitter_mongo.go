package sitterRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawfolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSitterDirectory is the Mongo-backed sitter directory.
type MongoSitterDirectory struct {
	coll *mongo.Collection
}

// NewMongoSitterDirectory wires the directory to the sitters collection.
func NewMongoSitterDirectory(db *mongo.Database) *MongoSitterDirectory {
	return &MongoSitterDirectory{coll: db.Collection("sitters")}
}

func (repo *MongoSitterDirectory) ListActiveSitters(ctx context.Context) ([]models.SitterCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing active sitters: %w", err)
	}
	defer cursor.Close(ctx)

	var sitters []models.SitterCandidate
	if err := cursor.All(ctx, &sitters); err != nil {
		return nil, fmt.Errorf("error decoding sitters: %w", err)
	}
	return sitters, nil
}

func (repo *MongoSitterDirectory) GetByID(ctx context.Context, sitterID string) (*models.SitterCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sitter models.SitterCandidate
	err := repo.coll.FindOne(ctx, bson.M{"id": sitterID}).Decode(&sitter)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("sitter %s: %w", sitterID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching sitter %s: %w", sitterID, err)
	}
	return &sitter, nil
}
