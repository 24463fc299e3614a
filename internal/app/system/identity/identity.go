// internal/app/system/identity/identity.go

// Package identity resolves a login identifier against the five identity
// collections and checks the password. This is the one shared login path:
// per-unit login, universal-login, and universal-login2 all end up here.
package identity

import (
	"context"
	"errors"
	"strings"

	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	unitstore "github.com/dalemusser/flockhub/internal/app/store/units"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Record is the resolved identity, stripped to what responses may carry.
// Password never leaves this package.
type Record struct {
	ID      primitive.ObjectID `json:"id"`
	Role    models.Role        `json:"role"`
	Name    string             `json:"name"`
	Email   string             `json:"email,omitempty"`
	LogoURL string             `json:"logo_url,omitempty"`
}

// Source probes one collection for an identifier match. A miss is reported
// as mongo.ErrNoDocuments; any other error aborts the cascade.
type Source interface {
	Role() models.Role
	Find(ctx context.Context, identifier string) (Record, string, error)
}

// Resolver probes its sources in order and returns the first match.
//
// The probe order is fixed: Campus, District, Community, Cell, SuperAdmin —
// senior units first. A Campus and a District sharing a normalized name both
// match, and the Campus wins; no ambiguity is reported. Passwords are
// compared with plain string equality against the stored value (stored as
// supplied at registration; see DESIGN.md for why this stays).
type Resolver struct {
	sources []Source
}

// New builds a Resolver. The unit stores must be passed in cascade order
// (campus, district, community, cell); a nil admins store leaves superadmins
// out, which is how the per-collection login resolvers are built.
func New(units []*unitstore.Store, admins *superadminstore.Store) *Resolver {
	sources := make([]Source, 0, len(models.CascadeOrder))
	for _, store := range units {
		sources = append(sources, UnitSource{Store: store})
	}
	if admins != nil {
		sources = append(sources, SuperAdminSource{Store: admins})
	}
	return &Resolver{sources: sources}
}

// NewFromSources builds a Resolver over explicit sources, in the order
// given. Tests use this with fakes.
func NewFromSources(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve walks the cascade for identifier and checks password on the first
// match. Error kinds: Validation for blank input, NotFound when no
// collection matches, InvalidCredentials when the matched record's password
// differs, Upstream for store failures.
func (r *Resolver) Resolve(ctx context.Context, identifier, password string) (Record, error) {
	if strings.TrimSpace(identifier) == "" {
		return Record{}, apperr.New(apperr.Validation, "identifier is required")
	}
	if password == "" {
		return Record{}, apperr.New(apperr.Validation, "password is required")
	}

	for _, src := range r.sources {
		rec, storedPassword, err := src.Find(ctx, identifier)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return Record{}, apperr.Wrap(apperr.Upstream, "login lookup failed", err)
		}
		if storedPassword != password {
			return Record{}, apperr.New(apperr.InvalidCredentials, "incorrect password")
		}
		return rec, nil
	}
	return Record{}, apperr.New(apperr.NotFound, "no account matches this identifier")
}

// UnitSource adapts a unit store into the cascade.
type UnitSource struct {
	Store *unitstore.Store
}

func (s UnitSource) Role() models.Role { return s.Store.Role() }

func (s UnitSource) Find(ctx context.Context, identifier string) (Record, string, error) {
	u, err := s.Store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return Record{}, "", err
	}
	return Record{
		ID:      u.ID,
		Role:    u.Role,
		Name:    u.Name,
		Email:   u.Email,
		LogoURL: u.LogoURL,
	}, u.Password, nil
}

// SuperAdminSource adapts the superadmin store into the cascade.
type SuperAdminSource struct {
	Store *superadminstore.Store
}

func (s SuperAdminSource) Role() models.Role { return models.RoleSuperAdmin }

func (s SuperAdminSource) Find(ctx context.Context, identifier string) (Record, string, error) {
	a, err := s.Store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return Record{}, "", err
	}
	return Record{
		ID:   a.ID,
		Role: models.RoleSuperAdmin,
		Name: a.Name,
	}, a.Password, nil
}
