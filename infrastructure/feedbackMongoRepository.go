package infrastructure

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/netpulse/netpulse-api/schema"
)

// FeedbackMongoRepository persists feedback submissions, insert only
type FeedbackMongoRepository struct {
	*StoreClient
}

// NewFeedbackMongoRepository creates a new feedback repository on a shared
// store client
func NewFeedbackMongoRepository(store *StoreClient) *FeedbackMongoRepository {
	return &FeedbackMongoRepository{StoreClient: store}
}

func feedbackCollection(r *FeedbackMongoRepository) *mongo.Collection {
	return r.Collection(feedbackCollectionName)
}

// Insert stores one feedback, assigning its id and creation timestamps
func (r *FeedbackMongoRepository) Insert(ctx context.Context, traceID string, record *schema.Feedback) (*schema.Feedback, error) {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := feedbackCollection(r).InsertOne(ctx, record)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return record, nil
}
