package handlers

import (
	"net/http"

	"github.com/coucou-social/backend/internal/models"
	"github.com/coucou-social/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to the friend relation
type FriendshipHandler struct {
	friendshipManager *repositories.FriendshipManager
	userRepository    repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(manager *repositories.FriendshipManager, userRepo repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipManager: manager,
		userRepository:    userRepo,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.GET("/friends", h.GetFriends)
	g.POST("/friends/search", h.SearchFriends)
	g.POST("/friends", h.AddFriends)
	g.POST("/friends/remove", h.RemoveFriends)
}

// GetFriends returns the current user's friends sorted by last name
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUser, err := h.loadCurrentUser(c)
	if err != nil {
		return httpError(err)
	}

	friends, err := h.friendshipManager.Friends(c.Request().Context(), currentUser)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, friends)
}

// SearchFriends searches for addable friend candidates. Business
// outcomes (no match, already a friend) come back as an error_msg value
// alongside the candidate list, ready for the search form.
func (h *FriendshipHandler) SearchFriends(c echo.Context) error {
	currentUser, err := h.loadCurrentUser(c)
	if err != nil {
		return httpError(err)
	}

	var req models.SearchFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	criteria := models.SearchCriteria{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	candidates, errorMsg, err := h.friendshipManager.SearchCandidates(c.Request().Context(), currentUser, criteria)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"candidates": candidates,
		"error_msg":  errorMsg,
	})
}

// AddFriends links the current user with each submitted target, one
// target at a time in input order.
func (h *FriendshipHandler) AddFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.FriendIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	targetIDs, err := parseObjectIDs(req.FriendIDs)
	if err != nil {
		return httpError(err)
	}

	updatedUser, err := h.friendshipManager.AddFriends(c.Request().Context(), userID, targetIDs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updatedUser)
}

// RemoveFriends unlinks the current user from each submitted target
func (h *FriendshipHandler) RemoveFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.FriendIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	targetIDs, err := parseObjectIDs(req.FriendIDs)
	if err != nil {
		return httpError(err)
	}

	updatedUser, err := h.friendshipManager.RemoveFriends(c.Request().Context(), userID, targetIDs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updatedUser)
}

func (h *FriendshipHandler) loadCurrentUser(c echo.Context) (*models.User, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	return h.userRepository.GetUserByID(c.Request().Context(), userID)
}
