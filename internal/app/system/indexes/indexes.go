// internal/app/system/indexes/indexes.go

// Package indexes creates the MongoDB indexes the application relies on.
// Index creation is idempotent; EnsureAll runs on every startup.
package indexes

import (
	"context"
	"fmt"

	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index. Uniqueness on name_ci is what makes the
// normalized-name rules stick under concurrent registration; the pre-checks
// in the stores only improve error messages.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	for _, role := range models.UnitRoles {
		c := db.Collection(role.Collection())
		if err := ensure(ctx, c,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "name_ci", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_name_ci"),
			},
			mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_email"),
			},
		); err != nil {
			return fmt.Errorf("indexes for %s: %w", role.Collection(), err)
		}
	}

	if err := ensure(ctx, db.Collection(models.RoleSuperAdmin.Collection()),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name_ci"),
		},
	); err != nil {
		return fmt.Errorf("indexes for superadmins: %w", err)
	}

	if err := ensure(ctx, db.Collection("members"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("by_full_name_ci"),
		},
	); err != nil {
		return fmt.Errorf("indexes for members: %w", err)
	}

	if err := ensure(ctx, db.Collection("media_posts"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("feed_newest_first"),
		},
	); err != nil {
		return fmt.Errorf("indexes for media_posts: %w", err)
	}

	if err := ensure(ctx, db.Collection("audit_events"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("by_timestamp"),
		},
	); err != nil {
		return fmt.Errorf("indexes for audit_events: %w", err)
	}

	return nil
}

func ensure(ctx context.Context, c *mongo.Collection, idx ...mongo.IndexModel) error {
	_, err := c.Indexes().CreateMany(ctx, idx)
	return err
}
