package repositories

import (
	"context"
	"strings"

	"github.com/coucou-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user directory operations.
// List mutations (friends, posts, reactions) are atomic at the store
// level so concurrent requests cannot lose updates.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SearchUsers(ctx context.Context, criteria models.SearchCriteria) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error)
	AddFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error
	AddPostID(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePostID(ctx context.Context, userID, postID primitive.ObjectID) error
	AddReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error
	RemoveReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document. Shadow fields are derived
// here so no write path can leave them stale or missing.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.DeriveShadowFields()
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if user.Reactions == nil {
		user.Reactions = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// GetUserByID retrieves a user by id
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetUserByUsername retrieves a user by username, matching the lowercase
// shadow field or the original form.
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, usernameFilter(username))
}

// GetUserByFirebaseUID retrieves a user linked to a Firebase account
func (r *MongoUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": firebaseUID})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("user not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

// GetUsersByIDs retrieves the given users, preserving the input id
// order. Ids with no matching document are skipped.
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	defer cursor.Close(ctx)

	var found []models.User
	if err = cursor.All(ctx, &found); err != nil {
		return nil, models.NewStoreError(err)
	}

	// $in does not guarantee order; restore the caller's ordering.
	byID := make(map[primitive.ObjectID]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	users := make([]models.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// SearchUsers queries the directory by exactly one criterion group, in
// priority order: username, first+last name pair, last name, first name.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, criteria models.SearchCriteria) ([]models.User, error) {
	var filter bson.M
	switch {
	case criteria.Username != "":
		filter = usernameFilter(criteria.Username)
	case criteria.FirstName != "" && criteria.LastName != "":
		filter = bson.M{
			"first_name_lower": strings.ToLower(criteria.FirstName),
			"last_name_lower":  strings.ToLower(criteria.LastName),
		}
	case criteria.LastName != "":
		filter = bson.M{"last_name_lower": strings.ToLower(criteria.LastName)}
	case criteria.FirstName != "":
		filter = bson.M{"first_name_lower": strings.ToLower(criteria.FirstName)}
	default:
		return nil, models.NewValidationError("no search criteria")
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, models.NewStoreError(err)
	}
	return users, nil
}

// UpdateUser applies a field-level patch to the user's name fields and
// re-derives the shadow fields in the same update, returning the fresh
// snapshot.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error) {
	set := bson.M{}
	if req.FirstName != "" {
		set["first_name"] = req.FirstName
		set["first_name_lower"] = strings.ToLower(req.FirstName)
	}
	if req.LastName != "" {
		set["last_name"] = req.LastName
		set["last_name_lower"] = strings.ToLower(req.LastName)
	}
	if len(set) == 0 {
		return r.GetUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("user not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

// AddFriendID appends friendID to the user's friend set. $addToSet makes
// the operation atomic and idempotent: a re-add is a no-op and the list
// can never contain duplicates.
func (r *MongoUserRepository) AddFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateList(ctx, userID, bson.M{"$addToSet": bson.M{"friends": friendID}})
}

// RemoveFriendID removes friendID from the user's friend set. Removing a
// non-member is a no-op.
func (r *MongoUserRepository) RemoveFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateList(ctx, userID, bson.M{"$pull": bson.M{"friends": friendID}})
}

// AddPostID appends postID to the user's post list
func (r *MongoUserRepository) AddPostID(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateList(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
}

// RemovePostID prunes postID from the user's post list
func (r *MongoUserRepository) RemovePostID(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateList(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

// AddReactionID appends reactionID to the user's reaction list
func (r *MongoUserRepository) AddReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error {
	return r.updateList(ctx, userID, bson.M{"$addToSet": bson.M{"reactions": reactionID}})
}

// RemoveReactionID removes reactionID from the user's reaction list
func (r *MongoUserRepository) RemoveReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error {
	return r.updateList(ctx, userID, bson.M{"$pull": bson.M{"reactions": reactionID}})
}

func (r *MongoUserRepository) updateList(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return models.NewStoreError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("user not found")
	}
	return nil
}

func usernameFilter(username string) bson.M {
	return bson.M{"$or": []bson.M{
		{"username_lower": strings.ToLower(username)},
		{"username": username},
	}}
}
