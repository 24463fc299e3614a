// internal/domain/models/mediapost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media kinds, inferred from the declared content type at upload time.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// Uploader is the denormalized snapshot of whoever uploaded a post.
// It is written once at upload time and never refreshed, so a later
// rename or logo change does not rewrite existing posts.
type Uploader struct {
	ID      primitive.ObjectID `bson:"id" json:"id"`
	Role    Role               `bson:"role" json:"role"`
	Name    string             `bson:"name" json:"name"`
	LogoURL string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
}

// MediaPost is one uploaded image or video with its anonymous like state.
//
// Invariant: LikeCount == len(LikedBy) after every toggle. Each toggle is a
// single conditional document update ($pull/$addToSet paired with $inc), so
// the two fields cannot drift within one operation. Two toggles racing for
// the same device are last-write-wins; see DESIGN.md.
type MediaPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	MediaKind string             `bson:"media_kind" json:"media_kind"`
	Caption   string             `bson:"caption,omitempty" json:"caption,omitempty"`
	LikeCount int                `bson:"like_count" json:"like_count"`
	LikedBy   []string           `bson:"liked_by" json:"-"`
	Uploader  Uploader           `bson:"uploader" json:"uploader"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
