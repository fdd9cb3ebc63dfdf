package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoIDField     = "_id"
	mongoParentField = "_parent"
)

// MongoStore maps each leaf collection name to a Mongo collection. A
// document's _id is its full path and _parent the path of its parent
// document, so users/u1/pantry/p1 lives in collection "pantry" with
// _id "users/u1/pantry/p1" and _parent "users/u1".
//
// Single-document atomicity comes from Mongo update operators: $set for
// merges and replacements, $push for appends, $pull for predicate removal.
type MongoStore struct {
	db   *mongo.Database
	opts options
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database, opts ...Option) *MongoStore {
	return &MongoStore{db: db, opts: buildOptions(opts)}
}

// ConnectMongo connects to uri and verifies the deployment with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, mopts.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *MongoStore) collection(ref Ref) *mongo.Collection {
	return s.db.Collection(ref.Collection)
}

func (s *MongoStore) Get(ctx context.Context, path string) (*Document, error) {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return nil, err
	}

	var raw bson.M
	err = s.collection(ref).FindOne(ctx, bson.M{mongoIDField: path}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	delete(raw, mongoIDField)
	delete(raw, mongoParentField)
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		fields[k] = fromBSON(v)
	}
	return &Document{Path: path, ID: ref.ID, Fields: fields}, nil
}

func (s *MongoStore) Set(ctx context.Context, path string, fields map[string]any, mode WriteMode) error {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return err
	}
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}

	filter := bson.M{mongoIDField: path}

	if mode == Overwrite {
		_, err = s.collection(ref).ReplaceOne(ctx, filter, documentBSON(ref, c), mopts.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	}

	update := bson.M{"$setOnInsert": bson.M{mongoParentField: ref.Parent}}
	if len(c) > 0 {
		update["$set"] = bson.M(c)
	}
	_, err = s.collection(ref).UpdateOne(ctx, filter, update, mopts.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, path string, fields map[string]any) error {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return err
	}
	return s.insert(ctx, ref, fields)
}

func (s *MongoStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, err := ParseCollectionPath(collection, s.opts.newID())
	if err != nil {
		return "", err
	}
	if err := s.insert(ctx, ref, fields); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *MongoStore) insert(ctx context.Context, ref Ref, fields map[string]any) error {
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}
	_, err = s.collection(ref).InsertOne(ctx, documentBSON(ref, c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := requireFields(fields); err != nil {
		return err
	}
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.updateOne(ctx, path, bson.M{"$set": bson.M(c)})
}

func (s *MongoStore) ArrayAppend(ctx context.Context, path, field string, entry any) error {
	if err := requireField(field); err != nil {
		return err
	}
	c, err := canonical(entry, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.updateOne(ctx, path, bson.M{"$push": bson.M{field: c}})
}

func (s *MongoStore) ArrayReplace(ctx context.Context, path, field string, values []any) error {
	if err := requireField(field); err != nil {
		return err
	}
	c, err := canonicalArray(values, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.updateOne(ctx, path, bson.M{"$set": bson.M{field: c}})
}

func (s *MongoStore) ArrayRemoveWhere(ctx context.Context, path, field string, match map[string]any) error {
	if err := requireField(field); err != nil {
		return err
	}
	if err := requireMatch(match); err != nil {
		return err
	}
	m, err := canonicalFields(match, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.updateOne(ctx, path, bson.M{"$pull": bson.M{field: bson.M(m)}})
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *MongoStore) updateOne(ctx context.Context, path string, update bson.M) error {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return err
	}
	res, err := s.collection(ref).UpdateOne(ctx, bson.M{mongoIDField: path}, update)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func documentBSON(ref Ref, fields map[string]any) bson.M {
	doc := make(bson.M, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc[mongoIDField] = ref.Path
	doc[mongoParentField] = ref.Parent
	return doc
}

// fromBSON converts decoded BSON values to the canonical representation.
func fromBSON(v any) any {
	switch x := v.(type) {
	case primitive.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = fromBSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = fromBSON(e)
		}
		return out
	case primitive.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromBSON(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromBSON(e)
		}
		return out
	case primitive.DateTime:
		return x.Time().UTC()
	case time.Time:
		return x.UTC()
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return x
	}
}
