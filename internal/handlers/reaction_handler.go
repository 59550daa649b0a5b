package handlers

import (
	"net/http"
	"strconv"

	"github.com/coucou-social/backend/internal/models"
	"github.com/coucou-social/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionHandler handles reactions to posts
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	userRepository     repositories.UserRepository
	postRepository     repositories.PostRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		userRepository:     userRepo,
		postRepository:     postRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/reactions", h.CreateReaction)
	g.DELETE("/posts/:post_id/reactions", h.DeleteReaction)
	g.GET("/posts/:post_id/reactions", h.GetReactions)
}

// CreateReaction records the current user's reaction to a post
func (h *ReactionHandler) CreateReaction(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	postID := c.Param("post_id")

	var req models.CreateReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	validate := validator.New()
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Make sure the post exists before recording anything against it.
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postOID); err != nil {
		return httpError(err)
	}

	already, err := h.reactionRepository.HasUserReacted(postID, userID.Hex())
	if err != nil {
		return httpError(err)
	}
	if already {
		return echo.NewHTTPError(http.StatusConflict, "You have already reacted to this post")
	}

	reaction := &models.Reaction{
		PostID: postID,
		UserID: userID.Hex(),
		Type:   req.Type,
	}
	if err := h.reactionRepository.CreateReaction(reaction); err != nil {
		return httpError(err)
	}

	reactionID := strconv.FormatUint(uint64(reaction.ID), 10)
	if err := h.userRepository.AddReactionID(c.Request().Context(), userID, reactionID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, reaction)
}

// DeleteReaction removes the current user's reaction from a post
func (h *ReactionHandler) DeleteReaction(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	postID := c.Param("post_id")

	reaction, err := h.reactionRepository.DeleteReaction(postID, userID.Hex())
	if err != nil {
		return httpError(err)
	}

	reactionID := strconv.FormatUint(uint64(reaction.ID), 10)
	if err := h.userRepository.RemoveReactionID(c.Request().Context(), userID, reactionID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetReactions lists the reactions on a post together with their count
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	postID := c.Param("post_id")

	reactions, err := h.reactionRepository.GetReactionsByPostID(postID)
	if err != nil {
		return httpError(err)
	}
	count, err := h.reactionRepository.GetReactionsCountByPostID(postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reactions": reactions,
		"count":     count,
	})
}
