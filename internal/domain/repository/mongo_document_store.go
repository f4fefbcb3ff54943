package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocumentStore struct {
	db *mongo.Database
}

// NewMongoDocumentStore maps each collection name onto a mongo collection of
// the same name. The client should decode embedded documents as bson.M
// (platform/database sets DefaultDocumentM).
func NewMongoDocumentStore(db *mongo.Database) DocumentStore {
	return &mongoDocumentStore{db: db}
}

func (r *mongoDocumentStore) Find(ctx context.Context, collection string, filter Filter) ([]model.Document, error) {
	cur, err := r.db.Collection(collection).Find(ctx, filterToBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("mongoDocumentStore.Find: %w", err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("mongoDocumentStore.Find decode: %w", err)
	}
	docs := make([]model.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, model.Document(m))
	}
	return docs, nil
}

func (r *mongoDocumentStore) FindByID(ctx context.Context, collection, id string) (model.Document, error) {
	var m bson.M
	err := r.db.Collection(collection).FindOne(ctx, bson.M{model.FieldID: id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoDocumentStore.FindByID: %w", err)
	}
	return model.Document(m), nil
}

func (r *mongoDocumentStore) Insert(ctx context.Context, collection string, doc model.Document) error {
	_, err := r.db.Collection(collection).InsertOne(ctx, map[string]interface{}(doc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("document %s already exists in %s: %w", doc.ID(), collection, common.ErrConflict)
		}
		return fmt.Errorf("mongoDocumentStore.Insert: %w", err)
	}
	return nil
}

func (r *mongoDocumentStore) UpdateByID(ctx context.Context, collection, id string, patch model.Document) (model.Document, error) {
	set := bson.M{}
	for k, v := range patch {
		if k != model.FieldID {
			set[k] = v
		}
	}
	// mongo rejects an empty $set.
	if len(set) == 0 {
		return r.FindByID(ctx, collection, id)
	}

	var m bson.M
	err := r.db.Collection(collection).FindOneAndUpdate(
		ctx,
		bson.M{model.FieldID: id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoDocumentStore.UpdateByID: %w", err)
	}
	return model.Document(m), nil
}

func (r *mongoDocumentStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	res, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{model.FieldID: id})
	if err != nil {
		return false, fmt.Errorf("mongoDocumentStore.DeleteByID: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoDocumentStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	res, err := r.db.Collection(collection).DeleteMany(ctx, filterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("mongoDocumentStore.DeleteMany: %w", err)
	}
	return res.DeletedCount, nil
}

func filterToBSON(f Filter) bson.M {
	m := bson.M{}
	for field, value := range f.Equals {
		m[field] = value
	}
	for field, values := range f.In {
		if values == nil {
			values = []string{}
		}
		m[field] = bson.M{"$in": values}
	}
	if f.Match != nil && len(f.Match.Fields) > 0 {
		pattern := regexp.QuoteMeta(f.Match.Term)
		ors := bson.A{}
		for _, field := range f.Match.Fields {
			ors = append(ors, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		m["$or"] = ors
	}
	return m
}
