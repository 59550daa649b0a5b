package repositories

import (
	"context"

	"github.com/coucou-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	UpdateBio(ctx context.Context, userID primitive.ObjectID, bio string) (*models.Profile, error)
	SetProfilePicture(ctx context.Context, userID, mediaID primitive.ObjectID) (*models.Profile, error)
	AddMediaIDs(ctx context.Context, userID primitive.ObjectID, mediaIDs []primitive.ObjectID) error
	RemoveMediaID(ctx context.Context, userID, mediaID primitive.ObjectID) error
}

// MongoProfileRepository implements ProfileRepository for MongoDB
type MongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new MongoProfileRepository
func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{collection: db.Collection("profiles")}
}

// CreateProfile inserts the companion profile document for a new user
func (r *MongoProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	profile.ID = primitive.NewObjectID()
	if profile.Media == nil {
		profile.Media = []primitive.ObjectID{}
	}
	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// GetProfileByUserID retrieves the profile owned by the given user
func (r *MongoProfileRepository) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("profile not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &profile, nil
}

// UpdateBio patches only the bio field so a stale read cannot clobber
// the picture or gallery references.
func (r *MongoProfileRepository) UpdateBio(ctx context.Context, userID primitive.ObjectID, bio string) (*models.Profile, error) {
	return r.patch(ctx, userID, bson.M{"$set": bson.M{"bio": bio}})
}

// SetProfilePicture patches only the profile picture reference
func (r *MongoProfileRepository) SetProfilePicture(ctx context.Context, userID, mediaID primitive.ObjectID) (*models.Profile, error) {
	return r.patch(ctx, userID, bson.M{"$set": bson.M{"profile_pic": mediaID}})
}

// AddMediaIDs appends gallery media references atomically
func (r *MongoProfileRepository) AddMediaIDs(ctx context.Context, userID primitive.ObjectID, mediaIDs []primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"user": userID},
		bson.M{"$push": bson.M{"media": bson.M{"$each": mediaIDs}}})
	if err != nil {
		return models.NewStoreError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("profile not found")
	}
	return nil
}

// RemoveMediaID prunes a gallery media reference atomically
func (r *MongoProfileRepository) RemoveMediaID(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"user": userID},
		bson.M{"$pull": bson.M{"media": mediaID}})
	if err != nil {
		return models.NewStoreError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("profile not found")
	}
	return nil
}

func (r *MongoProfileRepository) patch(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("profile not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &profile, nil
}
