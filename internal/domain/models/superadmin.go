// internal/domain/models/superadmin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuperAdmin is the platform operator record. Display name is globally
// unique (on the folded NameCI key); there is no email or parent ref.
type SuperAdmin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Password string             `bson:"password" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
