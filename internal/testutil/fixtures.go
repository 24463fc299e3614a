// internal/testutil/fixtures.go
package testutil

import (
	"testing"

	mediastore "github.com/dalemusser/flockhub/internal/app/store/media"
	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	unitstore "github.com/dalemusser/flockhub/internal/app/store/units"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUnit inserts an organizational unit through the real store so all
// normalization and uniqueness rules apply.
func CreateUnit(t *testing.T, db *mongo.Database, role models.Role, u models.OrgUnit) models.OrgUnit {
	t.Helper()

	ctx, cancel := TestContext()
	defer cancel()

	created, err := unitstore.New(db, role).Create(ctx, u)
	if err != nil {
		t.Fatalf("create %s fixture: %v", role, err)
	}
	return created
}

// CreateCampus is shorthand for the most common fixture.
func CreateCampus(t *testing.T, db *mongo.Database, name, email, password string) models.OrgUnit {
	t.Helper()
	return CreateUnit(t, db, models.RoleCampus, models.OrgUnit{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

// CreateDistrict inserts a district under the given campus.
func CreateDistrict(t *testing.T, db *mongo.Database, name, email, password string, campusID *primitive.ObjectID) models.OrgUnit {
	t.Helper()
	return CreateUnit(t, db, models.RoleDistrict, models.OrgUnit{
		Name:     name,
		Email:    email,
		Password: password,
		CampusID: campusID,
	})
}

// CreateSuperAdmin inserts a superadmin through the real store.
func CreateSuperAdmin(t *testing.T, db *mongo.Database, name, password string) models.SuperAdmin {
	t.Helper()

	ctx, cancel := TestContext()
	defer cancel()

	created, err := superadminstore.New(db).Create(ctx, models.SuperAdmin{
		Name:     name,
		Password: password,
	})
	if err != nil {
		t.Fatalf("create superadmin fixture: %v", err)
	}
	return created
}

// CreateMediaPost inserts a media post with the given caption and uploader.
func CreateMediaPost(t *testing.T, db *mongo.Database, caption string, uploader models.Uploader) models.MediaPost {
	t.Helper()

	ctx, cancel := TestContext()
	defer cancel()

	created, err := mediastore.New(db).Create(ctx, models.MediaPost{
		URL:       "https://assets.example.com/media/" + primitive.NewObjectID().Hex(),
		MediaKind: models.MediaKindImage,
		Caption:   caption,
		Uploader:  uploader,
	})
	if err != nil {
		t.Fatalf("create media post fixture: %v", err)
	}
	return created
}
