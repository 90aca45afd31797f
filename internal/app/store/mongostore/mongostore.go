// internal/app/store/mongostore/mongostore.go

// Package mongostore is the durable Storage backend: one MongoDB collection
// per entity type plus a counters collection used for integer id assignment.
// Multiple processes may share one database; see nextID for the id contract.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
)

// Compile-time contract assertion.
var _ storage.Storage = (*Store)(nil)

// Store is the MongoDB-backed Storage implementation. It holds only
// collection handles; the collections are the authoritative shared state.
type Store struct {
	users         *mongo.Collection
	ngos          *mongo.Collection
	opportunities *mongo.Collection
	applications  *mongo.Collection
	suggestions   *mongo.Collection
	counters      *mongo.Collection
}

// New wraps the given database. Call EnsureIndexes once at startup before
// serving traffic.
func New(db *mongo.Database) *Store {
	return &Store{
		users:         db.Collection("users"),
		ngos:          db.Collection("ngos"),
		opportunities: db.Collection("opportunities"),
		applications:  db.Collection("applications"),
		suggestions:   db.Collection("suggestions"),
		counters:      db.Collection("counters"),
	}
}

// nextID atomically allocates the next integer id for the named entity type.
//
// The observable contract matches "previous maximum plus one, scoped per
// entity type": ids start at 1 and increase monotonically. The counter
// document makes the allocation a single atomic $inc rather than a racy
// read-max-then-insert; seedCounter keeps the sequence intact for databases
// that predate the counters collection.
func (s *Store) nextID(ctx context.Context, entity string) (int64, error) {
	res := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": entity},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", entity, err)
	}
	return doc.Seq, nil
}

// seedCounter initializes the counter for one entity type from the current
// maximum assigned id, so pre-existing data keeps its sequence. No-op when
// the counter document already exists.
func (s *Store) seedCounter(ctx context.Context, entity string, c *mongo.Collection) error {
	err := s.counters.FindOne(ctx, bson.M{"_id": entity}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	var top struct {
		ID int64 `bson:"id"`
	}
	findErr := c.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}),
	).Decode(&top)
	if findErr != nil && findErr != mongo.ErrNoDocuments {
		return findErr
	}

	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": entity},
		bson.M{"$setOnInsert": bson.M{"seq": top.ID}},
		options.Update().SetUpsert(true),
	)
	return err
}

// all drains a cursor into out, closing it on every path.
func all[T any](ctx context.Context, cur *mongo.Cursor, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
