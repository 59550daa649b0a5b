package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. Ownership is implicit: the
// owning user's document lists the post id in its posts array.
type Post struct {
	ID              primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Text            string               `json:"text" bson:"text"`
	DateCreated     time.Time            `json:"date_created" bson:"date_created"`
	DateLastUpdated time.Time            `json:"date_last_updated" bson:"date_last_updated"`
	Media           []primitive.ObjectID `json:"media" bson:"media"`
}

// FriendPost is a post enriched with denormalized identity fields of the
// friend who authored it, so the feed view does not have to re-join.
type FriendPost struct {
	Post
	FriendID       primitive.ObjectID `json:"friend_id"`
	FirstName      string             `json:"first_name"`
	FirstNameLower string             `json:"first_name_lower"`
	LastName       string             `json:"last_name"`
	LastNameLower  string             `json:"last_name_lower"`
	FullName       string             `json:"full_name"`
	ProfileURL     string             `json:"profile_url"`
}

// SortPostsByLastUpdated orders posts descending by date_last_updated
// (most recently updated first). The sort is stable, so posts with an
// identical timestamp keep their relative input order.
func SortPostsByLastUpdated(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].DateLastUpdated.After(posts[j].DateLastUpdated)
	})
}

// SortFriendPostsByLastUpdated orders friend posts descending by
// date_last_updated with the same stability guarantee as
// SortPostsByLastUpdated.
func SortFriendPostsByLastUpdated(posts []FriendPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].DateLastUpdated.After(posts[j].DateLastUpdated)
	})
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text     string   `json:"text" validate:"required,min=1,max=2000"`
	MediaIDs []string `json:"media_ids,omitempty" validate:"omitempty,dive,required"`
}

// UpdatePostRequest defines the request body for editing a post
type UpdatePostRequest struct {
	Text     string   `json:"text,omitempty" validate:"omitempty,min=1,max=2000"`
	MediaIDs []string `json:"media_ids,omitempty" validate:"omitempty,dive,required"`
}

// DeletePostsRequest defines the request body for batch post deletion
type DeletePostsRequest struct {
	PostIDs []string `json:"post_ids" validate:"required,min=1,dive,required"`
}
