package handlers

import (
	"context"
	"net/http"

	"github.com/coucou-social/backend/internal/models"
	"github.com/coucou-social/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler builds the merged reverse-chronological timeline of a
// user's own posts and their friends' posts.
type FeedHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// BuildFeed loads the current user's own posts and every friend's
// posts, attaches denormalized friend identity to the latter, and
// returns both collections sorted descending by date_last_updated.
//
// The canonical friend set is the current user's own friends list; the
// atomic edge updates in the friendship manager keep it symmetric, so
// the reverse query (users whose lists contain the current user) can
// never diverge from it.
//
// Ties on date_last_updated keep input order: the user's posts-list
// order for own posts, friend-list order then each friend's posts-list
// order for friend posts. Both sorts are stable, so the result is
// deterministic.
func (h *FeedHandler) BuildFeed(ctx context.Context, currentUser *models.User) ([]models.Post, []models.FriendPost, error) {
	ownPosts, err := h.postRepository.GetPostsByIDs(ctx, currentUser.Posts)
	if err != nil {
		return nil, nil, err
	}
	models.SortPostsByLastUpdated(ownPosts)

	friends, err := h.userRepository.GetUsersByIDs(ctx, currentUser.Friends)
	if err != nil {
		return nil, nil, err
	}

	friendPosts := []models.FriendPost{}
	for _, friend := range friends {
		posts, err := h.postRepository.GetPostsByIDs(ctx, friend.Posts)
		if err != nil {
			return nil, nil, err
		}
		for _, post := range posts {
			friendPosts = append(friendPosts, models.FriendPost{
				Post:           post,
				FriendID:       friend.ID,
				FirstName:      friend.FirstName,
				FirstNameLower: friend.FirstNameLower,
				LastName:       friend.LastName,
				LastNameLower:  friend.LastNameLower,
				FullName:       friend.FullName(),
				ProfileURL:     friend.ProfileURL(),
			})
		}
	}
	models.SortFriendPostsByLastUpdated(friendPosts)

	return ownPosts, friendPosts, nil
}

// GetFeed returns the current user's feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	currentUser, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	ownPosts, friendPosts, err := h.BuildFeed(c.Request().Context(), currentUser)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":        ownPosts,
		"friend_posts": friendPosts,
	})
}
