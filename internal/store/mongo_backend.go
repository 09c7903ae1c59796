// server/internal/store/mongo_backend.go
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// blobDoc is the shape of one document in the "blobs" collection: one
// document per persisted key.
type blobDoc struct {
	Key  string `bson:"key"`
	Data []byte `bson:"data"`
}

// MongoBackend stores each key as a single document in one collection.
type MongoBackend struct {
	collection *mongo.Collection
}

func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{collection: db.Collection("blobs")}
}

func (b *MongoBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var doc blobDoc
	err := b.collection.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return doc.Data, nil
}

func (b *MongoBackend) Write(ctx context.Context, key string, data []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := b.collection.ReplaceOne(ctx, bson.M{"key": key}, blobDoc{Key: key, Data: data}, opts)
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

func (b *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := b.collection.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

func (b *MongoBackend) DeletePrefix(ctx context.Context, prefix string) error {
	filter := bson.M{"key": bson.M{"$regex": "^" + prefix}}
	_, err := b.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete blobs with prefix %q: %w", prefix, err)
	}
	return nil
}
