package logger

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSink writes log entries into a MongoDB collection.
type MongoSink struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoSink connects to uri and ensures a descending time index on
// db.collection.
func NewMongoSink(ctx context.Context, uri, db, collection string) (*MongoSink, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "time", Value: -1}}})

	return &MongoSink{client: client, col: col}, nil
}

func (s *MongoSink) WriteEntries(ctx context.Context, entries []Entry) error {
	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

// Close disconnects the client.
func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ShipToMongo tees the base logger into uri/db/collection and returns the
// function that flushes and disconnects.
func ShipToMongo(ctx context.Context, uri, db, collection, level string) (func(), error) {
	sink, err := NewMongoSink(ctx, uri, db, collection)
	if err != nil {
		return nil, err
	}
	h := NewSinkHandler(sink, SinkOptions{Level: ParseLevel(level)})
	Tee(h)

	return func() {
		h.Close()
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sink.Close(cctx)
	}, nil
}
