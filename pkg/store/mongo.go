package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bigbang/pkg/layout"
)

// MongoOptions configures [NewMongoStore].
type MongoOptions struct {
	URI        string
	Database   string        // default "bigbang"
	Collection string        // default "layouts"
	Timeout    time.Duration // per query; default 10s
}

// MongoStore keeps layouts in a MongoDB collection, one document per
// layout with _id set to the layout ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

type mongoDocument struct {
	layout.Layout `bson:",inline"`
	BubbleCount   int       `bson:"bubble_count"`
	SavedAt       time.Time `bson:"saved_at"`
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures the
// saved_at index exists.
func NewMongoStore(ctx context.Context, o MongoOptions) (*MongoStore, error) {
	if o.Database == "" {
		o.Database = "bigbang"
	}
	if o.Collection == "" {
		o.Collection = "layouts"
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.URI).SetTimeout(o.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	s := &MongoStore{
		client:     client,
		collection: client.Database(o.Database).Collection(o.Collection),
		timeout:    o.Timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	_, err = s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "saved_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

// Save implements [Store].
func (s *MongoStore) Save(ctx context.Context, l layout.Layout) error {
	if err := checkID(l.ID); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := mongoDocument{Layout: l, BubbleCount: len(l.Bubbles), SavedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": l.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save layout %s: %w", l.ID, err)
	}
	return nil
}

// Load implements [Store].
func (s *MongoStore) Load(ctx context.Context, id string) (layout.Layout, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc mongoDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return layout.Layout{}, notFound(id)
	}
	if err != nil {
		return layout.Layout{}, fmt.Errorf("load layout %s: %w", id, err)
	}
	return doc.Layout, nil
}

// List implements [Store].
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "saved_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "width": 1, "height": 1, "bubble_count": 1, "categories": 1, "saved_at": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	return out, nil
}

// Delete implements [Store].
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
