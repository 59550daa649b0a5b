package models

import "gorm.io/gorm"

// Reaction represents a user's reaction to a post, stored in PostgreSQL.
// PostID and UserID hold MongoDB ObjectIDs in hex form.
type Reaction struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"`
	UserID string `json:"user_id" gorm:"index"`
	Type   string `json:"type" gorm:"type:varchar(20)"`
}

// CreateReactionRequest defines the request body for reacting to a post
type CreateReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like love laugh sad angry"`
}
