package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile is the one-to-one companion document of a User: bio text, a
// profile picture reference and the photo gallery media ids.
type Profile struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID   `json:"user_id" bson:"user"`
	Bio        string               `json:"bio" bson:"bio"`
	ProfilePic primitive.ObjectID   `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
	Media      []primitive.ObjectID `json:"media" bson:"media"`
}

// UpdateBioRequest defines the request body for editing the profile bio
type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=1000"`
}

// DeletePhotosRequest defines the request body for batch gallery deletion
type DeletePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1,dive,required"`
}
