package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Media is an uploaded image stored inline in MongoDB.
type Media struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AltText     string             `json:"alt_text" bson:"alt_text"`
	ContentType string             `json:"content_type" bson:"content_type"`
	Data        []byte             `json:"-" bson:"data"`
}
