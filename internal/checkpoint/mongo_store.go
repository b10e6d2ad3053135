package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists marked fingerprints as documents in a MongoDB
// collection, keyed by _id=fingerprint with an upsert on every Mark so
// re-marking the same query (e.g. a racing retry that succeeded twice)
// is a no-op rather than a duplicate-key error. Grounded on the
// teacher's internal/storage/database.go MongoStorage — same
// connect/ping-on-construct pattern — but ReplaceOne-upsert replaces
// InsertMany, since this store tracks membership, not an append log of
// scraped items.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

type checkpointDoc struct {
	ID       string    `bson:"_id"`
	MarkedAt time.Time `bson:"marked_at"`
}

// NewMongoStore connects to uri and pings it before returning, so a
// misconfigured connection string fails at startup rather than on the
// first Mark call.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_checkpoint_store"),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) (map[string]struct{}, error) {
	cur, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc checkpointDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode: %w", err)
		}
		out[doc.ID] = struct{}{}
	}
	return out, cur.Err()
}

func (s *MongoStore) Mark(ctx context.Context, fingerprint string) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": fingerprint}, checkpointDoc{ID: fingerprint, MarkedAt: time.Now()}, opts)
	if err != nil {
		return fmt.Errorf("mongodb upsert: %w", err)
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("mongodb delete: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
