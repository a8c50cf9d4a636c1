package mongo

import (
	"context"
	"errors"
	"fitcoach/coaching-api/internal/repository"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// store wraps the document operations every repository shares:
// findById, exists, create, updateById, deleteById and find.
type store[T any] struct {
	collection *mongo.Collection
}

func newStore[T any](db *mongo.Database, collectionName string) store[T] {
	return store[T]{collection: db.Collection(collectionName)}
}

// insert stores doc and returns the generated ObjectID.
func (s store[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	// Assert the type of the inserted ID
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (s store[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := s.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s store[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s store[T]) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// find returns every document matching filter. The result is never nil.
func (s store[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	findOptions := options.Find()
	if len(sort) > 0 {
		findOptions.SetSort(sort)
	}

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// updateByID applies set (and unset, when non-empty) to one document and
// always bumps updatedAt.
func (s store[T]) updateByID(ctx context.Context, id primitive.ObjectID, set, unset bson.M) error {
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now().UTC()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	// result.ModifiedCount could be 0 if data was the same, which is not an error.
	return nil
}

func (s store[T]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s store[T]) setImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	set := bson.M{"image": image}
	unset := bson.M{}
	if thumbnail != "" {
		set["imageThumbnail"] = thumbnail
	} else {
		unset["imageThumbnail"] = ""
	}
	return s.updateByID(ctx, id, set, unset)
}

// setOptionalID writes id under key, or schedules key for removal when id is nil.
func setOptionalID(set, unset bson.M, key string, id *primitive.ObjectID) {
	if id != nil {
		set[key] = *id
		return
	}
	unset[key] = ""
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
