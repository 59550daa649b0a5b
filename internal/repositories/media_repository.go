package repositories

import (
	"context"

	"github.com/coucou-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaRepository defines the interface for media blob operations
type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) error
	GetMediaByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error)
	DeleteMedia(ctx context.Context, id primitive.ObjectID) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// CreateMedia inserts an uploaded image
func (r *MongoMediaRepository) CreateMedia(ctx context.Context, media *models.Media) error {
	media.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, media); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// GetMediaByID retrieves a media document by id
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var media models.Media
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("media not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &media, nil
}

// DeleteMedia deletes a media document by id
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewStoreError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("media not found")
	}
	return nil
}
