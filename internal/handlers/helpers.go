package handlers

import (
	"github.com/coucou-social/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID extracts the authenticated user's id from the JWT claims
// stored by the auth middleware. Routes behind the middleware always
// have claims; a missing or malformed id is treated as unauthenticated.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return primitive.NilObjectID, models.NewNotAuthenticatedError("no current user in context")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, models.NewNotAuthenticatedError("invalid user ID in token")
	}
	return id, nil
}

// httpError converts an application error into the echo error the
// handler returns, preserving the taxonomy's status mapping.
func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(models.HTTPStatus(err), err.Error())
}

// parseObjectIDs converts hex ids from a request body, rejecting the
// whole batch on the first malformed id.
func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, hex := range raw {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, models.NewValidationError("invalid ID format: " + hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
