// internal/app/system/identity/identity_test.go
package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSource struct {
	role     models.Role
	accounts map[string]fakeAccount // keyed by identifier
	err      error
}

type fakeAccount struct {
	rec      Record
	password string
}

func (f fakeSource) Role() models.Role { return f.role }

func (f fakeSource) Find(_ context.Context, identifier string) (Record, string, error) {
	if f.err != nil {
		return Record{}, "", f.err
	}
	a, ok := f.accounts[identifier]
	if !ok {
		return Record{}, "", mongo.ErrNoDocuments
	}
	return a.rec, a.password, nil
}

func source(role models.Role, identifier, name, password string) fakeSource {
	return fakeSource{
		role: role,
		accounts: map[string]fakeAccount{
			identifier: {
				rec:      Record{ID: primitive.NewObjectID(), Role: role, Name: name},
				password: password,
			},
		},
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Same identifier exists as a campus and as a district; the campus is
	// probed first and must win.
	r := NewFromSources(
		source(models.RoleCampus, "north", "North", "campus-pass"),
		source(models.RoleDistrict, "north", "North", "district-pass"),
	)

	rec, err := r.Resolve(context.Background(), "north", "campus-pass")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.Role != models.RoleCampus {
		t.Fatalf("role = %q, want %q", rec.Role, models.RoleCampus)
	}
}

func TestResolveFirstMatchChecksPassword(t *testing.T) {
	// The cascade stops at the first identifier match: a wrong password
	// there is InvalidCredentials even when a later collection would match.
	r := NewFromSources(
		source(models.RoleCampus, "north", "North", "campus-pass"),
		source(models.RoleDistrict, "north", "North", "district-pass"),
	)

	_, err := r.Resolve(context.Background(), "north", "district-pass")
	if !apperr.IsKind(err, apperr.InvalidCredentials) {
		t.Fatalf("err = %v, want InvalidCredentials", err)
	}
}

func TestResolveFallsThroughToLaterSources(t *testing.T) {
	r := NewFromSources(
		fakeSource{role: models.RoleCampus, accounts: map[string]fakeAccount{}},
		fakeSource{role: models.RoleDistrict, accounts: map[string]fakeAccount{}},
		source(models.RoleSuperAdmin, "root", "Root", "secret"),
	)

	rec, err := r.Resolve(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.Role != models.RoleSuperAdmin {
		t.Fatalf("role = %q, want %q", rec.Role, models.RoleSuperAdmin)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := NewFromSources(
		fakeSource{role: models.RoleCampus, accounts: map[string]fakeAccount{}},
	)

	_, err := r.Resolve(context.Background(), "ghost", "whatever")
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestResolveBlankInput(t *testing.T) {
	r := NewFromSources(source(models.RoleCampus, "north", "North", "pass"))

	if _, err := r.Resolve(context.Background(), "   ", "pass"); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("blank identifier: err = %v, want Validation", err)
	}
	if _, err := r.Resolve(context.Background(), "north", ""); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("blank password: err = %v, want Validation", err)
	}
}

func TestResolveStoreFailure(t *testing.T) {
	r := NewFromSources(
		fakeSource{role: models.RoleCampus, err: errors.New("connection reset")},
		source(models.RoleDistrict, "north", "North", "pass"),
	)

	_, err := r.Resolve(context.Background(), "north", "pass")
	if !apperr.IsKind(err, apperr.Upstream) {
		t.Fatalf("err = %v, want Upstream", err)
	}
}
