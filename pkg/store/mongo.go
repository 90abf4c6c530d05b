package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Default database and collection names for the Mongo store.
const (
	DefaultDatabase   = "osicards"
	DefaultCollection = "layouts"
)

// MongoStore persists layouts in a MongoDB collection, keyed by layout ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the Mongo-backed store. Empty Database and
// Collection fall back to the defaults.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping
// before returning, so a bad URI fails at construction rather than on first
// use.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts a layout by its ID.
func (s *MongoStore) Save(ctx context.Context, layout SavedLayout) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": layout.ID},
		layout,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save layout %s: %w", layout.ID, err)
	}
	return nil
}

// Get retrieves a layout by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (SavedLayout, error) {
	var layout SavedLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&layout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return SavedLayout{}, ErrNotFound
	}
	if err != nil {
		return SavedLayout{}, fmt.Errorf("get layout %s: %w", id, err)
	}
	return layout, nil
}

// List returns layouts newest first, up to limit.
func (s *MongoStore) List(ctx context.Context, limit int) ([]SavedLayout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer cursor.Close(ctx)

	var layouts []SavedLayout
	if err := cursor.All(ctx, &layouts); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	return layouts, nil
}

// Delete removes a layout by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
