package infrastructure

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/netpulse/netpulse-api/schema"
)

// SpeedTestMongoRepository persists speed test records, insert and query
// only, no update or delete path.
type SpeedTestMongoRepository struct {
	*StoreClient
}

// NewSpeedTestMongoRepository creates a new speed test repository on a
// shared store client
func NewSpeedTestMongoRepository(store *StoreClient) *SpeedTestMongoRepository {
	return &SpeedTestMongoRepository{StoreClient: store}
}

func speedTestCollection(r *SpeedTestMongoRepository) *mongo.Collection {
	return r.Collection(speedTestCollectionName)
}

// Insert stores one record, assigning its id and creation timestamps
func (r *SpeedTestMongoRepository) Insert(ctx context.Context, traceID string, record *schema.SpeedTest) (*schema.SpeedTest, error) {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := speedTestCollection(r).InsertOne(ctx, record)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return record, nil
}

// FindAll returns records sorted by testedAt descending, optionally filtered
// by userId. An empty userID returns the whole collection.
func (r *SpeedTestMongoRepository) FindAll(ctx context.Context, traceID string, userID string) ([]schema.SpeedTest, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}

	opts := options.Find()
	opts.SetSort(bson.D{{Key: "testedAt", Value: -1}})
	opts.SetComment(traceID)

	cursor, err := speedTestCollection(r).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []schema.SpeedTest{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
