package handlers

import (
	"net/http"

	"github.com/coucou-social/backend/internal/models"
	"github.com/coucou-social/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.POST("/posts/delete", h.DeletePosts)
}

// CreatePost creates a new post and links it to the owner's post list.
// If linking fails, the orphan post document is removed again so the
// user's list and the posts collection cannot drift apart.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	mediaIDs, err := parseObjectIDs(req.MediaIDs)
	if err != nil {
		return httpError(err)
	}

	post := &models.Post{
		Text:  req.Text,
		Media: mediaIDs,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return httpError(err)
	}

	if err := h.userRepository.AddPostID(c.Request().Context(), userID, post.ID); err != nil {
		// Best effort: do not leave an unowned post behind.
		_ = h.postRepository.DeletePost(c.Request().Context(), post.ID)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetUserPosts returns a user's posts for the profile posts tab,
// descending by date_last_updated.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), user.Posts)
	if err != nil {
		return httpError(err)
	}
	models.SortPostsByLastUpdated(posts)

	return c.JSON(http.StatusOK, posts)
}

// UpdatePost edits a post owned by the current user and bumps its
// date_last_updated.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	currentUser, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	if !currentUser.HasPost(postID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), postID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePosts deletes the submitted posts one at a time in input order.
// Each post is pruned from the owner's list before its document is
// removed; a failure aborts the remaining posts and already-deleted
// ones stay deleted.
func (h *PostHandler) DeletePosts(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.DeletePostsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	postIDs, err := parseObjectIDs(req.PostIDs)
	if err != nil {
		return httpError(err)
	}

	currentUser, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	for _, postID := range postIDs {
		if !currentUser.HasPost(postID) {
			return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
		}
		if err := h.userRepository.RemovePostID(c.Request().Context(), userID, postID); err != nil {
			return httpError(err)
		}
		if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
			return httpError(err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}
