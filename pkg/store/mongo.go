package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection renders are kept in.
const Collection = "renders"

// MaxDocumentBytes is the server's BSON document size limit.
const MaxDocumentBytes = 16 << 20

// MongoStore keeps renders in MongoDB. A TTL index on expires_at lets
// the server purge old renders; Get also filters them out in between.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to uri, pings the server and ensures the TTL
// index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{client: client, collection: client.Database(database).Collection(Collection)}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Render, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	filter := bson.M{"_id": id, "expires_at": bson.M{"$gt": time.Now().UTC()}}

	var r Render
	err := s.collection.FindOne(ctx, filter).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find render: %w", err)
	}
	return &r, nil
}

// Put upserts r. Renders whose encoded size exceeds [MaxDocumentBytes]
// fail with [ErrTooLarge] before anything is sent.
func (s *MongoStore) Put(ctx context.Context, r *Render) error {
	doc, err := encodeRender(r)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": r.ID}, doc, opts); err != nil {
		return fmt.Errorf("save render: %w", err)
	}
	return nil
}

func encodeRender(r *Render) (bson.Raw, error) {
	doc, err := bson.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode render: %w", err)
	}
	if len(doc) > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(doc), MaxDocumentBytes)
	}
	return doc, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
