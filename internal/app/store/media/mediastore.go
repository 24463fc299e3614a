// internal/app/store/media/mediastore.go
package mediastore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errDeviceNeeded = errors.New("device id is required")

// Store handles the media_posts collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("media_posts")}
}

// Create inserts one media post with a fresh like state.
func (s *Store) Create(ctx context.Context, p models.MediaPost) (models.MediaPost, error) {
	p.ID = primitive.NewObjectID()
	p.LikeCount = 0
	p.LikedBy = []string{}
	p.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.MediaPost{}, err
	}
	return p, nil
}

// GetByID loads a post by ObjectID. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MediaPost, error) {
	var p models.MediaPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListNewestFirst returns posts in descending creation order. When before is
// non-zero only posts created strictly earlier are returned, which gives the
// feed its keyset cursor. Callers pass limit+1 to look ahead for paging.
func (s *Store) ListNewestFirst(ctx context.Context, before time.Time, limit int64) ([]models.MediaPost, error) {
	filter := bson.M{}
	if !before.IsZero() {
		filter["created_at"] = bson.M{"$lt": before}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.MediaPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike flips the per-device like on a post and returns the resulting
// count and liked state.
//
// Each direction is a single conditional document update: the unlike filter
// requires the device to be present before pulling it, the like filter
// requires it to be absent before adding it, and both pair the set change
// with the matching $inc. That keeps like_count equal to the set size no
// matter which branch wins. If another toggle for the same device slips in
// between the two attempts, we retry once against the fresh state.
//
// Returns mongo.ErrNoDocuments when the post does not exist.
func (s *Store) ToggleLike(ctx context.Context, id primitive.ObjectID, deviceID string) (likes int, liked bool, err error) {
	if deviceID == "" {
		return 0, false, errDeviceNeeded
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	for attempt := 0; attempt < 2; attempt++ {
		// Unlike: only matches while the device is in the set.
		var p models.MediaPost
		err = s.c.FindOneAndUpdate(ctx,
			bson.M{"_id": id, "liked_by": deviceID},
			bson.M{
				"$pull": bson.M{"liked_by": deviceID},
				"$inc":  bson.M{"like_count": -1},
			},
			after,
		).Decode(&p)
		if err == nil {
			return clamp(p.LikeCount), false, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, err
		}

		// Like: only matches while the device is absent.
		err = s.c.FindOneAndUpdate(ctx,
			bson.M{"_id": id, "liked_by": bson.M{"$ne": deviceID}},
			bson.M{
				"$addToSet": bson.M{"liked_by": deviceID},
				"$inc":      bson.M{"like_count": 1},
			},
			after,
		).Decode(&p)
		if err == nil {
			return clamp(p.LikeCount), true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, err
		}

		// Neither filter matched: the post is gone, or a concurrent toggle
		// moved the device between our two attempts. Distinguish and retry.
		if findErr := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); findErr != nil {
			return 0, false, findErr
		}
	}
	return 0, false, err
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
