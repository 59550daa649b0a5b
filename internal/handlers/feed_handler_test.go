package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/coucou-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubUserRepository serves canned user documents keyed by id.
type stubUserRepository struct {
	users map[primitive.ObjectID]models.User
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.DeriveShadowFields()
	s.users[user.ID] = *user
	return nil
}

func (s *stubUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("user not found")
	}
	return &user, nil
}

func (s *stubUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, models.NewNotFoundError("user not found")
}

func (s *stubUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	for _, user := range s.users {
		if user.FirebaseUID == firebaseUID {
			u := user
			return &u, nil
		}
	}
	return nil, models.NewNotFoundError("user not found")
}

func (s *stubUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *stubUserRepository) SearchUsers(ctx context.Context, criteria models.SearchCriteria) ([]models.User, error) {
	return nil, nil
}

func (s *stubUserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error) {
	return s.GetUserByID(ctx, id)
}

func (s *stubUserRepository) AddFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepository) RemoveFriendID(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepository) AddPostID(ctx context.Context, userID, postID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepository) RemovePostID(ctx context.Context, userID, postID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepository) AddReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error {
	return nil
}

func (s *stubUserRepository) RemoveReactionID(ctx context.Context, userID primitive.ObjectID, reactionID string) error {
	return nil
}

// stubPostRepository serves canned posts keyed by id, preserving the
// input id order the way the Mongo implementation does.
type stubPostRepository struct {
	posts map[primitive.ObjectID]models.Post
}

func (s *stubPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *stubPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("post not found")
	}
	return &post, nil
}

func (s *stubPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := s.posts[id]; ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (s *stubPostRepository) UpdatePost(ctx context.Context, id primitive.ObjectID, req models.UpdatePostRequest) (*models.Post, error) {
	return s.GetPostByID(ctx, id)
}

func (s *stubPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	delete(s.posts, id)
	return nil
}

func seedPost(repo *stubPostRepository, text string, lastUpdated time.Time) models.Post {
	post := models.Post{
		ID:              primitive.NewObjectID(),
		Text:            text,
		DateCreated:     lastUpdated,
		DateLastUpdated: lastUpdated,
		Media:           []primitive.ObjectID{},
	}
	repo.posts[post.ID] = post
	return post
}

func newFeedFixture() (*FeedHandler, *stubUserRepository, *stubPostRepository) {
	userRepo := &stubUserRepository{users: make(map[primitive.ObjectID]models.User)}
	postRepo := &stubPostRepository{posts: make(map[primitive.ObjectID]models.Post)}
	return NewFeedHandler(postRepo, userRepo), userRepo, postRepo
}

func TestBuildFeedOrdering(t *testing.T) {
	handler, userRepo, postRepo := newFeedFixture()
	now := time.Now()

	oldest := seedPost(postRepo, "oldest", now.Add(-3*time.Hour))
	middle := seedPost(postRepo, "middle", now.Add(-2*time.Hour))
	newest := seedPost(postRepo, "newest", now.Add(-1*time.Hour))

	friend := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Bob",
		LastName:  "Durand",
		Username:  "bob",
		Posts:     []primitive.ObjectID{middle.ID},
	}
	friend.DeriveShadowFields()
	userRepo.users[friend.ID] = friend

	current := &models.User{
		ID:      primitive.NewObjectID(),
		Posts:   []primitive.ObjectID{oldest.ID, newest.ID},
		Friends: []primitive.ObjectID{friend.ID},
	}

	ownPosts, friendPosts, err := handler.BuildFeed(context.Background(), current)
	require.NoError(t, err)

	require.Len(t, ownPosts, 2)
	assert.Equal(t, "newest", ownPosts[0].Text)
	assert.Equal(t, "oldest", ownPosts[1].Text)

	require.Len(t, friendPosts, 1)
	assert.Equal(t, "middle", friendPosts[0].Text)
}

func TestBuildFeedFriendIdentity(t *testing.T) {
	handler, userRepo, postRepo := newFeedFixture()

	post := seedPost(postRepo, "hello", time.Now())
	friend := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Bob",
		LastName:  "Durand",
		Username:  "bob",
		Posts:     []primitive.ObjectID{post.ID},
	}
	friend.DeriveShadowFields()
	userRepo.users[friend.ID] = friend

	current := &models.User{
		ID:      primitive.NewObjectID(),
		Friends: []primitive.ObjectID{friend.ID},
	}

	_, friendPosts, err := handler.BuildFeed(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, friendPosts, 1)

	entry := friendPosts[0]
	assert.Equal(t, friend.ID, entry.FriendID)
	assert.Equal(t, "Bob", entry.FirstName)
	assert.Equal(t, "durand", entry.LastNameLower)
	assert.Equal(t, "Bob Durand", entry.FullName)
	assert.Equal(t, "/profile/"+friend.ID.Hex(), entry.ProfileURL)
}

func TestBuildFeedEmpty(t *testing.T) {
	handler, _, _ := newFeedFixture()

	current := &models.User{ID: primitive.NewObjectID()}

	ownPosts, friendPosts, err := handler.BuildFeed(context.Background(), current)
	require.NoError(t, err)
	assert.Empty(t, ownPosts)
	assert.Empty(t, friendPosts)
}

func TestBuildFeedSkipsMissingPosts(t *testing.T) {
	handler, _, postRepo := newFeedFixture()

	kept := seedPost(postRepo, "kept", time.Now())
	current := &models.User{
		ID:    primitive.NewObjectID(),
		Posts: []primitive.ObjectID{primitive.NewObjectID(), kept.ID},
	}

	ownPosts, _, err := handler.BuildFeed(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, ownPosts, 1)
	assert.Equal(t, "kept", ownPosts[0].Text)
}
