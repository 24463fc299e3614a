// internal/app/store/members/memberstore_test.go
package memberstore_test

import (
	"errors"
	"testing"

	memberstore "github.com/dalemusser/flockhub/internal/app/store/members"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/dalemusser/flockhub/internal/testutil"
)

func TestCreate_NormalizesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := memberstore.New(db).Create(ctx, models.Member{
		FullName: "  Jane   Doe ",
		Email:    " Jane@Example.COM ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.FullName != "Jane Doe" {
		t.Errorf("FullName = %q", created.FullName)
	}
	if created.FullNameCI != "jane doe" {
		t.Errorf("FullNameCI = %q", created.FullNameCI)
	}
	if created.Email != "jane@example.com" {
		t.Errorf("Email = %q", created.Email)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := memberstore.New(db)
	if _, err := s.Create(ctx, models.Member{FullName: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, models.Member{FullName: "Other Jane", Email: "JANE@example.com"})
	if !errors.Is(err, memberstore.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestList_OrderedByFoldedFullName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := memberstore.New(db)
	for _, m := range []models.Member{
		{FullName: "Zoe Young", Email: "z@example.com"},
		{FullName: "adam Brown", Email: "a@example.com"},
	} {
		if _, err := s.Create(ctx, m); err != nil {
			t.Fatalf("Create %q: %v", m.FullName, err)
		}
	}

	members, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("len = %d, want 2", len(members))
	}
	if members[0].FullName != "adam Brown" {
		t.Errorf("members[0] = %q, want folded-name order", members[0].FullName)
	}
}
