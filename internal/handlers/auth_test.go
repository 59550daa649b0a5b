package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coucou-social/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubProfileRepository struct {
	profiles map[primitive.ObjectID]models.Profile
}

func newStubProfileRepository() *stubProfileRepository {
	return &stubProfileRepository{profiles: make(map[primitive.ObjectID]models.Profile)}
}

func (s *stubProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *stubProfileRepository) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, models.NewNotFoundError("profile not found")
	}
	return &profile, nil
}

func (s *stubProfileRepository) UpdateBio(ctx context.Context, userID primitive.ObjectID, bio string) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, models.NewNotFoundError("profile not found")
	}
	profile.Bio = bio
	s.profiles[userID] = profile
	return &profile, nil
}

func (s *stubProfileRepository) SetProfilePicture(ctx context.Context, userID, mediaID primitive.ObjectID) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, models.NewNotFoundError("profile not found")
	}
	profile.ProfilePic = mediaID
	s.profiles[userID] = profile
	return &profile, nil
}

func (s *stubProfileRepository) AddMediaIDs(ctx context.Context, userID primitive.ObjectID, mediaIDs []primitive.ObjectID) error {
	profile, ok := s.profiles[userID]
	if !ok {
		return models.NewNotFoundError("profile not found")
	}
	profile.Media = append(profile.Media, mediaIDs...)
	s.profiles[userID] = profile
	return nil
}

func (s *stubProfileRepository) RemoveMediaID(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	profile, ok := s.profiles[userID]
	if !ok {
		return models.NewNotFoundError("profile not found")
	}
	kept := profile.Media[:0]
	for _, id := range profile.Media {
		if id != mediaID {
			kept = append(kept, id)
		}
	}
	profile.Media = kept
	s.profiles[userID] = profile
	return nil
}

const testJWTSecret = "test-secret"

func newAuthFixture() (*AuthHandler, *stubUserRepository, *stubProfileRepository) {
	userRepo := &stubUserRepository{users: make(map[primitive.ObjectID]models.User)}
	profileRepo := newStubProfileRepository()
	return NewAuthHandler(userRepo, profileRepo, nil, testJWTSecret), userRepo, profileRepo
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignupCreatesUserAndProfile(t *testing.T) {
	handler, userRepo, profileRepo := newAuthFixture()
	e := echo.New()

	c, rec := postJSON(e, "/api/v1/auth/signup",
		`{"first_name":"Alice","last_name":"Martin","username":"Alice75","password":"correcthorse"}`)

	require.NoError(t, handler.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "token")

	user, err := userRepo.GetUserByUsername(context.Background(), "Alice75")
	require.NoError(t, err)
	assert.Equal(t, "alice75", user.UsernameLower)
	assert.Equal(t, "martin", user.LastNameLower)
	assert.NotEqual(t, "correcthorse", user.Password, "password must be stored hashed")

	_, err = profileRepo.GetProfileByUserID(context.Background(), user.ID)
	assert.NoError(t, err)
}

func TestSignupDuplicateUsername(t *testing.T) {
	handler, _, _ := newAuthFixture()
	e := echo.New()

	body := `{"first_name":"Alice","last_name":"Martin","username":"alice","password":"correcthorse"}`

	c, rec := postJSON(e, "/api/v1/auth/signup", body)
	require.NoError(t, handler.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, _ = postJSON(e, "/api/v1/auth/signup", body)
	err := handler.Signup(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	handler, _, _ := newAuthFixture()
	e := echo.New()

	c, _ := postJSON(e, "/api/v1/auth/signup",
		`{"first_name":"Alice","last_name":"Martin","username":"alice","password":"short"}`)
	err := handler.Signup(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSignInIssuesValidToken(t *testing.T) {
	handler, _, _ := newAuthFixture()
	e := echo.New()

	c, rec := postJSON(e, "/api/v1/auth/signup",
		`{"first_name":"Alice","last_name":"Martin","username":"alice","password":"correcthorse"}`)
	require.NoError(t, handler.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = postJSON(e, "/api/v1/auth/signin", `{"username":"alice","password":"correcthorse"}`)
	require.NoError(t, handler.SignIn(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(body["token"], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.UserID)
}

func TestSignInWrongPassword(t *testing.T) {
	handler, _, _ := newAuthFixture()
	e := echo.New()

	c, _ := postJSON(e, "/api/v1/auth/signup",
		`{"first_name":"Alice","last_name":"Martin","username":"alice","password":"correcthorse"}`)
	require.NoError(t, handler.Signup(c))

	c, _ = postJSON(e, "/api/v1/auth/signin", `{"username":"alice","password":"wrongpassword"}`)
	err := handler.SignIn(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSignInUnknownUsername(t *testing.T) {
	handler, _, _ := newAuthFixture()
	e := echo.New()

	c, _ := postJSON(e, "/api/v1/auth/signin", `{"username":"nobody","password":"whatever1"}`)
	err := handler.SignIn(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
