package preset

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zzaoclub/imgx/pkg/errors"
)

// MongoConfig holds connection settings for a MongoDB preset store.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // defaults to "imgx"
	Collection string // defaults to "presets"
}

// MongoStore loads presets from a MongoDB collection, for deployments where
// presets are managed through an admin tool instead of files on disk.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "imgx"
	}
	if cfg.Collection == "" {
		cfg.Collection = "presets"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// GetByCode implements [Store].
func (s *MongoStore) GetByCode(ctx context.Context, code string) (*Preset, error) {
	var p Preset
	err := s.coll.FindOne(ctx, bson.M{"code": code}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, errNotFound(code)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "query preset %q", code)
	}
	return &p, nil
}

// LoadAll implements [Store].
func (s *MongoStore) LoadAll(ctx context.Context) ([]*Preset, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"code": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "query presets")
	}
	defer cursor.Close(ctx)

	var presets []*Preset
	if err := cursor.All(ctx, &presets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode presets")
	}
	return presets, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
