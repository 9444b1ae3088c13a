package bookingRepo

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

// MongoBookingRepo is the Mongo-backed booking repository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo wires the repository to the bookings collection.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": booking})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrNotFound)
	}
	return nil
}

func (repo *MongoBookingRepo) FindBySeries(ctx context.Context, seriesID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"recurring_series_id": seriesID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "visit_number", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying series %s bookings: %w", seriesID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding series %s bookings: %w", seriesID, err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) CountBySeries(ctx context.Context, seriesID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"recurring_series_id": seriesID})
	if err != nil {
		return 0, fmt.Errorf("error counting series %s bookings: %w", seriesID, err)
	}
	return count, nil
}

func (repo *MongoBookingRepo) CountBySeriesByStatus(ctx context.Context, seriesID string) (map[models.BookingStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"recurring_series_id": seriesID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating series %s statuses: %w", seriesID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.BookingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding series %s status counts: %w", seriesID, err)
	}

	counts := make(map[models.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// InsertManyAtomic commits a bounded chunk of bookings inside a Mongo
// session transaction. The chunk size ceiling mirrors the store's
// per-transaction operation limit.
func (repo *MongoBookingRepo) InsertManyAtomic(ctx context.Context, bookings []*models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	if len(bookings) > MaxAtomicWrites {
		return fmt.Errorf("chunk of %d exceeds the %d-operation transaction ceiling", len(bookings), MaxAtomicWrites)
	}

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	docs := make([]interface{}, len(bookings))
	for i, b := range bookings {
		docs[i] = b
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if _, err := repo.coll.InsertMany(sc, docs, options.InsertMany().SetOrdered(true)); err != nil {
			_ = sc.AbortTransaction(sc)
			return fmt.Errorf("insert chunk failed: %w", err)
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking chunk transaction failed: %w", err)
	}
	return nil
}
