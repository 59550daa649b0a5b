package handlers

import (
	"io"
	"net/http"

	"github.com/coucou-social/backend/internal/models"
	"github.com/coucou-social/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler handles HTTP requests for bios, profile pictures and
// the photo gallery.
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	mediaRepository   repositories.MediaRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, mediaRepo repositories.MediaRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		mediaRepository:   mediaRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id/profile", h.GetProfile)
	g.PUT("/profile/bio", h.UpdateBio)
	g.PUT("/profile/picture", h.UpdateProfilePicture)
	g.POST("/profile/photos", h.AddPhotos)
	g.POST("/profile/photos/delete", h.DeletePhotos)
}

// GetProfile retrieves a user's profile by user ID
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.profileRepository.GetProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateBio replaces the bio text on the current user's profile
func (h *ProfileHandler) UpdateBio(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.UpdateBioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.UpdateBio(c.Request().Context(), userID, req.Bio)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfilePicture stores the uploaded image, points the profile at
// it and removes the previous picture document.
func (h *ProfileHandler) UpdateProfilePicture(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	media, err := h.readUploadedImage(c, "picture", "Profile Picture")
	if err != nil {
		return httpError(err)
	}

	currentProfile, err := h.profileRepository.GetProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	if err := h.mediaRepository.CreateMedia(c.Request().Context(), media); err != nil {
		return httpError(err)
	}

	profile, err := h.profileRepository.SetProfilePicture(c.Request().Context(), userID, media.ID)
	if err != nil {
		return httpError(err)
	}

	// The old picture is unreferenced now; best effort cleanup.
	if !currentProfile.ProfilePic.IsZero() {
		_ = h.mediaRepository.DeleteMedia(c.Request().Context(), currentProfile.ProfilePic)
	}

	return c.JSON(http.StatusOK, profile)
}

// AddPhotos appends uploaded images to the current user's gallery
func (h *ProfileHandler) AddPhotos(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No photos uploaded")
	}

	mediaIDs := make([]primitive.ObjectID, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}

		media := &models.Media{
			AltText:     file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		}
		if err := h.mediaRepository.CreateMedia(c.Request().Context(), media); err != nil {
			return httpError(err)
		}
		mediaIDs = append(mediaIDs, media.ID)
	}

	if err := h.profileRepository.AddMediaIDs(c.Request().Context(), userID, mediaIDs); err != nil {
		return httpError(err)
	}

	profile, err := h.profileRepository.GetProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeletePhotos removes the submitted gallery photos one at a time in
// input order: the reference is pruned from the profile first, then the
// media document is deleted. A failure aborts the remaining photos.
func (h *ProfileHandler) DeletePhotos(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpError(err)
	}

	var req models.DeletePhotosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	photoIDs, err := parseObjectIDs(req.PhotoIDs)
	if err != nil {
		return httpError(err)
	}

	for _, photoID := range photoIDs {
		if err := h.profileRepository.RemoveMediaID(c.Request().Context(), userID, photoID); err != nil {
			return httpError(err)
		}
		if err := h.mediaRepository.DeleteMedia(c.Request().Context(), photoID); err != nil {
			return httpError(err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandler) readUploadedImage(c echo.Context, field, altText string) (*models.Media, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, models.NewValidationError("missing uploaded file")
	}
	src, err := file.Open()
	if err != nil {
		return nil, models.NewValidationError("failed to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, models.NewValidationError("failed to read uploaded file")
	}

	return &models.Media{
		AltText:     altText,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
