package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasavipoluri/student-registry-api/internal/model"
)

// SequenceRepository issues monotonically increasing integer IDs backed by a
// counter document per named sequence.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the named
	// sequence, creating it with value 1 if absent.
	Next(ctx context.Context, name string) (int64, error)
}

const counterCollection = "counters"

type sequenceMongoRepository struct {
	db *mongo.Database
}

// NewSequenceMongoRepository creates a new MongoDB-backed sequence generator.
func NewSequenceMongoRepository(db *mongo.Database) SequenceRepository {
	return &sequenceMongoRepository{db: db}
}

func (r *sequenceMongoRepository) Next(ctx context.Context, name string) (int64, error) {
	// Single-document find-and-modify, atomic under concurrent callers.
	result := r.db.Collection(counterCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequence_value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return 0, result.Err()
	}

	var counter model.SequenceCounter
	if err := result.Decode(&counter); err != nil {
		return 0, err
	}

	return counter.Value, nil
}
