// internal/domain/models/orgunit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgUnit represents one record in any of the four unit collections
// (campuses, districts, communities, cells).
//
// NOTE:
//   - Name preserves the user's casing with internal whitespace collapsed.
//   - NameCI is the derived lookup key (lowercase, case-folded). It is never
//     set by callers; the store derives it on every write.
//   - Password is stored as the user supplied it. Login compares with plain
//     string equality. Known gap, kept deliberately; see DESIGN.md.
//   - Parent refs vary by variant: a district points at its campus, a
//     community at its district, a cell at campus+district+community.
type OrgUnit struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role     Role               `bson:"role" json:"role"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Password string             `bson:"password" json:"-"`
	LogoURL  string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`

	CampusID    *primitive.ObjectID `bson:"campus_id,omitempty" json:"campus_id,omitempty"`
	DistrictID  *primitive.ObjectID `bson:"district_id,omitempty" json:"district_id,omitempty"`
	CommunityID *primitive.ObjectID `bson:"community_id,omitempty" json:"community_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
