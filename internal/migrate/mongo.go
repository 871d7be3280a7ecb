package migrate

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the MongoDB Store backend. Document IDs map onto string
// _id values, field deletion onto $unset and batches onto a single ordered
// BulkWrite. BulkWrite is not transactional, so batch atomicity is
// best-effort on this backend.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) FetchPage(ctx context.Context, collection, startAfter string, pageSize int) ([]Document, error) {
	filter := bson.M{}
	if startAfter != "" {
		filter["_id"] = bson.M{"$gt": startAfter}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(pageSize))

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo query on '%s' failed: %w", collection, err)
	}
	defer cursor.Close(ctx)

	return decodeAll(ctx, cursor)
}

func (s *MongoStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo read of '%s' failed: %w", collection, err)
	}
	defer cursor.Close(ctx)

	return decodeAll(ctx, cursor)
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]Document, error) {
	var docs []Document
	for cursor.Next(ctx) {
		var raw map[string]interface{}
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding mongo doc: %w", err)
		}
		id := fmt.Sprintf("%v", raw["_id"])
		delete(raw, "_id")
		docs = append(docs, Document{ID: id, Data: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Batch(collection string) Batch {
	return &mongoBatch{coll: s.db.Collection(collection)}
}

type mongoBatch struct {
	coll   *mongo.Collection
	models []mongo.WriteModel
}

func (b *mongoBatch) Set(id string, data map[string]interface{}) {
	model := mongo.NewReplaceOneModel().
		SetFilter(bson.M{"_id": id}).
		SetReplacement(mongoValues(data)).
		SetUpsert(true)
	b.models = append(b.models, model)
}

func (b *mongoBatch) Update(id string, ops []FieldOp) {
	model := mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": id}).
		SetUpdate(mongoUpdate(ops))
	b.models = append(b.models, model)
}

func (b *mongoBatch) Len() int {
	return len(b.models)
}

func (b *mongoBatch) Commit(ctx context.Context) error {
	if len(b.models) == 0 {
		return nil
	}
	opts := options.BulkWrite().SetOrdered(true)
	if _, err := b.coll.BulkWrite(ctx, b.models, opts); err != nil {
		return &BatchCommitError{Collection: b.coll.Name(), Ops: len(b.models), Err: err}
	}
	return nil
}

// mongoUpdate translates tagged field ops into one $set/$unset update
// document.
func mongoUpdate(ops []FieldOp) bson.M {
	set := bson.M{}
	unset := bson.M{}
	for _, op := range ops {
		if op.Delete {
			unset[op.Path] = ""
		} else {
			set[op.Path] = op.Value
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// mongoValues copies a Set payload, replacing the server-timestamp
// sentinel with the current time. MongoDB has no write-time sentinel
// usable inside a replacement document.
func mongoValues(data map[string]interface{}) bson.M {
	out := bson.M{}
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = time.Now().UTC()
		} else {
			out[k] = v
		}
	}
	return out
}
