package repositories

import (
	"context"
	"time"

	"github.com/coucou-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts a new post with both timestamps set to now
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	now := time.Now()
	post.DateCreated = now
	post.DateLastUpdated = now
	if post.Media == nil {
		post.Media = []primitive.ObjectID{}
	}
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// GetPostByID retrieves a post by id
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("post not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

// GetPostsByIDs retrieves the given posts in input id order. Ids with no
// matching document are skipped; callers re-sort for display anyway.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	defer cursor.Close(ctx)

	var found []models.Post
	if err = cursor.All(ctx, &found); err != nil {
		return nil, models.NewStoreError(err)
	}

	byID := make(map[primitive.ObjectID]models.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	posts := make([]models.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// UpdatePost applies a field-level patch to the post and bumps
// date_last_updated, returning the fresh document.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id primitive.ObjectID, req models.UpdatePostRequest) (*models.Post, error) {
	set := bson.M{"date_last_updated": time.Now()}
	if req.Text != "" {
		set["text"] = req.Text
	}
	if req.MediaIDs != nil {
		mediaIDs := make([]primitive.ObjectID, 0, len(req.MediaIDs))
		for _, raw := range req.MediaIDs {
			mediaID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, models.NewValidationError("invalid media ID format")
			}
			mediaIDs = append(mediaIDs, mediaID)
		}
		set["media"] = mediaIDs
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("post not found")
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

// DeletePost deletes a post by id
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewStoreError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("post not found")
	}
	return nil
}
