// internal/app/store/superadmins/store.go
package superadminstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/flockhub/internal/app/system/normalize"
	"github.com/dalemusser/flockhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned when a superadmin with the same normalized name
// already exists.
var ErrDuplicate = errors.New("a superadmin with this name already exists")

var (
	errNameNeeded = errors.New("name is required")
	errPassNeeded = errors.New("password is required")
)

// Store handles the superadmins collection. SuperAdmins carry only a
// globally unique display name and a password.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.RoleSuperAdmin.Collection())}
}

// Create inserts a new superadmin after normalizing the name.
func (s *Store) Create(ctx context.Context, a models.SuperAdmin) (models.SuperAdmin, error) {
	a.ID = primitive.NewObjectID()
	a.Name = normalize.Name(a.Name)
	a.NameCI = normalize.Key(a.Name)

	if a.Name == "" {
		return models.SuperAdmin{}, errNameNeeded
	}
	if a.Password == "" {
		return models.SuperAdmin{}, errPassNeeded
	}

	err := s.c.FindOne(ctx, bson.M{"name_ci": a.NameCI}).Err()
	if err == nil {
		return models.SuperAdmin{}, ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.SuperAdmin{}, err
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SuperAdmin{}, ErrDuplicate
		}
		return models.SuperAdmin{}, err
	}
	return a, nil
}

// GetByID loads a superadmin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SuperAdmin, error) {
	var a models.SuperAdmin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIdentifier resolves a login identifier against the folded name key.
// SuperAdmins have no email, so only the name form can match.
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*models.SuperAdmin, error) {
	var a models.SuperAdmin
	err := s.c.FindOne(ctx, bson.M{"name_ci": normalize.Identifier(identifier)}).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
