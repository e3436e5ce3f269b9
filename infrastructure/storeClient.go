package infrastructure

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/netpulse/netpulse-api/config"
)

const (
	speedTestCollectionName       = "tests"
	feedbackCollectionName        = "feedback"
	privacySettingsCollectionName = "privacySettings"

	idxUserIDTestedAt = "UserIdTestedAt"
	idxUniqueUserID   = "UniqueUserId"
)

// netpulseIndexes are ensured once the store connection is up.
//
// The unique userId index on privacySettings is what keeps concurrent
// upserts for a never-before-seen user from creating duplicate documents.
var netpulseIndexes = map[string][]mongo.IndexModel{
	speedTestCollectionName: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "testedAt", Value: -1}},
			Options: options.Index().SetName(idxUserIDTestedAt),
		},
	},
	privacySettingsCollectionName: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName(idxUniqueUserID).SetUnique(true),
		},
	},
}

// StoreClient wraps the mongo client with index bootstrap and a
// wait-until-connected startup, shared by every repository.
type StoreClient struct {
	config  *config.MongoConfig
	logger  *log.Logger
	client  *mongo.Client
	started chan struct{}
	closing chan struct{}
}

func NewStoreClient(cfg *config.MongoConfig, logger *log.Logger) (*StoreClient, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("missing mongo configuration")
	}
	return &StoreClient{
		config:  cfg,
		logger:  logger,
		started: make(chan struct{}),
		closing: make(chan struct{}),
	}, nil
}

// Start connects in the background, retrying until the store answers, then
// ensures the declared indexes. Use WaitUntilStarted to block on readiness.
func (s *StoreClient) Start() {
	go func() {
		for {
			err := s.connect()
			if err == nil {
				break
			}
			s.logger.Printf("store connection failed, retrying in %s: %v", s.config.WaitForConnect, err)
			select {
			case <-s.closing:
				return
			case <-time.After(s.config.WaitForConnect):
			}
		}
		if err := s.ensureIndexes(); err != nil {
			s.logger.Printf("store index creation failed: %v", err)
		}
		close(s.started)
	}()
}

func (s *StoreClient) connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.config.URI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}
	s.client = client
	return nil
}

func (s *StoreClient) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	for collection, indexes := range netpulseIndexes {
		if _, err := s.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}

// WaitUntilStarted blocks until the first successful connection
func (s *StoreClient) WaitUntilStarted() {
	<-s.started
}

func (s *StoreClient) Ping() error {
	if s.client == nil {
		return errors.New("store not connected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *StoreClient) Close() error {
	select {
	case <-s.closing:
	default:
		close(s.closing)
	}
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Collection returns a handle on a collection of the configured database
func (s *StoreClient) Collection(name string) *mongo.Collection {
	return s.client.Database(s.config.Database).Collection(name)
}
