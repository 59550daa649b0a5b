package models

import (
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an identity record stored in MongoDB. The lowercase
// shadow fields back case-insensitive search and are always derived on
// write; callers never supply them directly.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName      string               `json:"first_name" bson:"first_name"`
	FirstNameLower string               `json:"first_name_lower" bson:"first_name_lower"`
	LastName       string               `json:"last_name" bson:"last_name"`
	LastNameLower  string               `json:"last_name_lower" bson:"last_name_lower"`
	Username       string               `json:"username" bson:"username"`
	UsernameLower  string               `json:"username_lower" bson:"username_lower"`
	Password       string               `json:"-" bson:"password,omitempty"` // bcrypt hash; empty for OAuth-only accounts
	FirebaseUID    string               `json:"firebase_uid,omitempty" bson:"firebase_uid,omitempty"`
	Posts          []primitive.ObjectID `json:"posts" bson:"posts"`
	Friends        []primitive.ObjectID `json:"friends" bson:"friends"`
	Reactions      []string             `json:"reactions" bson:"reactions"`
}

// DeriveShadowFields refreshes the lowercase copies of the name and
// username fields. Must be called on every write path that touches them.
func (u *User) DeriveShadowFields() {
	u.FirstNameLower = strings.ToLower(u.FirstName)
	u.LastNameLower = strings.ToLower(u.LastName)
	u.UsernameLower = strings.ToLower(u.Username)
}

// FullName returns the display name used in feed entries.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ProfileURL returns the canonical profile path for this user.
func (u *User) ProfileURL() string {
	return "/profile/" + u.ID.Hex()
}

// HasFriend reports whether id is present in the user's friend list.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, friendID := range u.Friends {
		if friendID == id {
			return true
		}
	}
	return false
}

// HasPost reports whether the user owns the given post id.
func (u *User) HasPost(id primitive.ObjectID) bool {
	for _, postID := range u.Posts {
		if postID == id {
			return true
		}
	}
	return false
}

// SortFriendsByLastName orders users ascending by lowercase last name.
// The sort is stable: users with identical last names keep their
// relative input order.
func SortFriendsByLastName(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].LastNameLower < users[j].LastNameLower
	})
}

// SearchCriteria carries friend-search input. Exactly one criterion
// group is honored, in priority order: username, first+last name pair,
// last name only, first name only.
type SearchCriteria struct {
	Username  string
	FirstName string
	LastName  string
}

// HasAny reports whether at least one search field was supplied.
func (c SearchCriteria) HasAny() bool {
	return c.Username != "" || c.FirstName != "" || c.LastName != ""
}

// CreateLocalUserRequest defines the request body for local signup
type CreateLocalUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=1,max=50"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local sign-in
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for updating name fields
type UpdateUserRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
}

// SearchFriendRequest defines the request body for the friend search form
type SearchFriendRequest struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// FriendIDsRequest defines the request body for batch add/remove friend
type FriendIDsRequest struct {
	FriendIDs []string `json:"friend_ids" validate:"required,min=1,dive,required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
