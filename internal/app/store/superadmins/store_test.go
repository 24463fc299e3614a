// internal/app/store/superadmins/store_test.go
package superadminstore_test

import (
	"errors"
	"testing"

	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/dalemusser/flockhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_NormalizesName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := superadminstore.New(db).Create(ctx, models.SuperAdmin{
		Name:     "  Root \t Admin ",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Root Admin" {
		t.Errorf("Name = %q", created.Name)
	}
	if created.NameCI != "root admin" {
		t.Errorf("NameCI = %q", created.NameCI)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := superadminstore.New(db)
	if _, err := s.Create(ctx, models.SuperAdmin{Name: "Root Admin", Password: "pw"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, models.SuperAdmin{Name: "ROOT   admin", Password: "pw"})
	if !errors.Is(err, superadminstore.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestFindByIdentifier_NameOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := superadminstore.New(db)
	created, err := s.Create(ctx, models.SuperAdmin{Name: "Root Admin", Password: "pw"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.FindByIdentifier(ctx, " root   ADMIN ")
	if err != nil {
		t.Fatalf("FindByIdentifier: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("found %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	if _, err := s.FindByIdentifier(ctx, "nobody"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("miss err = %v, want ErrNoDocuments", err)
	}
}
