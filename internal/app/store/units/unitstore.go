// internal/app/store/units/unitstore.go
package unitstore

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicate is returned when a unit with the same email or
	// normalized name already exists in the collection.
	ErrDuplicate = errors.New("a record with this email or name already exists")

	errBadRole     = errors.New("store role must be campus|district|community|cell")
	errNameNeeded  = errors.New("name is required")
	errPassNeeded  = errors.New("password is required")
	errParentMixup = errors.New("parent refs do not match the unit variant")
)

// Store handles one of the four organizational-unit collections. The same
// code serves campuses, districts, communities, and cells; the role picks
// the collection and the parent-ref shape.
type Store struct {
	role models.Role
	c    *mongo.Collection
}

func New(db *mongo.Database, role models.Role) *Store {
	return &Store{role: role, c: db.Collection(role.Collection())}
}

// Role returns the unit variant this store serves.
func (s *Store) Role() models.Role { return s.role }

// Create inserts a new unit after normalizing and validating fields.
// Name casing is preserved; NameCI is always derived here, never taken from
// the caller. The password is stored exactly as supplied (see DESIGN.md).
func (s *Store) Create(ctx context.Context, u models.OrgUnit) (models.OrgUnit, error) {
	switch s.role {
	case models.RoleCampus, models.RoleDistrict, models.RoleCommunity, models.RoleCell:
	default:
		return models.OrgUnit{}, errBadRole
	}

	u.ID = primitive.NewObjectID()
	u.Role = s.role
	u.Name = normalize.Name(u.Name)
	u.NameCI = normalize.Key(u.Name)
	u.Email = normalize.Email(u.Email)

	if u.Name == "" {
		return models.OrgUnit{}, errNameNeeded
	}
	if u.Password == "" {
		return models.OrgUnit{}, errPassNeeded
	}
	if err := s.checkParents(u); err != nil {
		return models.OrgUnit{}, err
	}

	// Pre-check duplicates across both unique keys so the caller gets one
	// coherent error; the unique indexes are the real enforcement.
	dup, err := s.exists(ctx, u.Email, u.NameCI)
	if err != nil {
		return models.OrgUnit{}, err
	}
	if dup {
		return models.OrgUnit{}, ErrDuplicate
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OrgUnit{}, ErrDuplicate
		}
		return models.OrgUnit{}, err
	}
	return u, nil
}

// checkParents enforces the ref shape per variant: districts point at a
// campus, communities at a district, cells at campus+district+community.
func (s *Store) checkParents(u models.OrgUnit) error {
	switch s.role {
	case models.RoleCampus:
		if u.CampusID != nil || u.DistrictID != nil || u.CommunityID != nil {
			return errParentMixup
		}
	case models.RoleDistrict:
		if u.DistrictID != nil || u.CommunityID != nil {
			return errParentMixup
		}
	case models.RoleCommunity:
		if u.CampusID != nil || u.CommunityID != nil {
			return errParentMixup
		}
	case models.RoleCell:
		// cells may carry all three refs
	}
	return nil
}

// exists reports whether any record matches the email (when present) or the
// folded name key.
func (s *Store) exists(ctx context.Context, email, nameCI string) (bool, error) {
	clauses := []bson.M{{"name_ci": nameCI}}
	if email != "" {
		clauses = append(clauses, bson.M{"email": email})
	}
	err := s.c.FindOne(ctx, bson.M{"$or": clauses}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// GetByID loads a unit by ObjectID. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
	var u models.OrgUnit
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIdentifier resolves a login identifier against this collection:
// a stored email equal to the normalized email form, or a folded name key
// equal to the normalized identifier. Returns mongo.ErrNoDocuments on miss.
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*models.OrgUnit, error) {
	email := normalize.Email(identifier)
	key := normalize.Identifier(identifier)

	var u models.OrgUnit
	err := s.c.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email": email},
		{"name_ci": key},
	}}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all units in the collection ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.OrgUnit, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var units []models.OrgUnit
	if err := cur.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// SetLogoURL records the logo URL after a successful asset upload.
func (s *Store) SetLogoURL(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"logo_url":   url,
		"updated_at": time.Now().UTC(),
	}})
	return err
}
