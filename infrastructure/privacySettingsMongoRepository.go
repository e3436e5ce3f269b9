package infrastructure

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/netpulse/netpulse-api/schema"
)

// PrivacySettingsMongoRepository persists the one-document-per-user settings.
// Atomicity of the read-or-create and upsert paths relies on
// FindOneAndUpdate with upsert plus the unique userId index, there is no
// application-level locking.
type PrivacySettingsMongoRepository struct {
	*StoreClient
}

// NewPrivacySettingsMongoRepository creates a new settings repository on a
// shared store client
func NewPrivacySettingsMongoRepository(store *StoreClient) *PrivacySettingsMongoRepository {
	return &PrivacySettingsMongoRepository{StoreClient: store}
}

func privacySettingsCollection(r *PrivacySettingsMongoRepository) *mongo.Collection {
	return r.Collection(privacySettingsCollectionName)
}

// GetOrCreate returns the settings document for defaults.UserID, inserting
// defaults when absent. $setOnInsert leaves an existing document untouched.
func (r *PrivacySettingsMongoRepository) GetOrCreate(ctx context.Context, traceID string, defaults schema.PrivacySettings) (*schema.PrivacySettings, error) {
	filter := bson.M{"userId": defaults.UserID}
	update := bson.M{"$setOnInsert": defaults}
	return r.findOneAndUpsert(ctx, filter, update)
}

// Upsert overwrites exactly the supplied fields, creating the document
// seeded with only those fields when absent. Unsupplied fields are never
// defaulted on this path.
func (r *PrivacySettingsMongoRepository) Upsert(ctx context.Context, traceID string, userID string, patch schema.PrivacySettingsPatch) (*schema.PrivacySettings, error) {
	filter := bson.M{"userId": userID}
	update := bson.M{"$setOnInsert": bson.M{"userId": userID}}
	if !patch.IsEmpty() {
		update["$set"] = patch
	}
	return r.findOneAndUpsert(ctx, filter, update)
}

func (r *PrivacySettingsMongoRepository) findOneAndUpsert(ctx context.Context, filter bson.M, update bson.M) (*schema.PrivacySettings, error) {
	opts := options.FindOneAndUpdate()
	opts.SetUpsert(true)
	opts.SetReturnDocument(options.After)

	var settings schema.PrivacySettings
	err := privacySettingsCollection(r).FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings)
	if mongo.IsDuplicateKeyError(err) {
		// Two concurrent upserts for a never-before-seen user both took the
		// insert path; the unique userId index rejected one. The document
		// now exists, so the same operation succeeds on retry.
		err = privacySettingsCollection(r).FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings)
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
