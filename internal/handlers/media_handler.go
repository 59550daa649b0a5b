package handlers

import (
	"net/http"

	"github.com/coucou-social/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaHandler serves stored image blobs
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository) *MediaHandler {
	return &MediaHandler{mediaRepository: mediaRepo}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.GET("/media/:id", h.GetMedia)
}

// GetMedia streams a stored image back to the client
func (h *MediaHandler) GetMedia(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.Blob(http.StatusOK, media.ContentType, media.Data)
}
