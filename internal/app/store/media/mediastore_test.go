// internal/app/store/media/mediastore_test.go
package mediastore_test

import (
	"errors"
	"testing"
	"time"

	mediastore "github.com/dalemusser/flockhub/internal/app/store/media"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/dalemusser/flockhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func uploader() models.Uploader {
	return models.Uploader{ID: primitive.NewObjectID(), Role: models.RoleCampus, Name: "North"}
}

func TestCreate_StartsWithFreshLikeState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := mediastore.New(db).Create(ctx, models.MediaPost{
		URL:       "https://assets.example.com/a.jpg",
		MediaKind: models.MediaKindImage,
		Caption:   "hello",
		LikeCount: 99, // caller-supplied like state must be discarded
		LikedBy:   []string{"sneaky"},
		Uploader:  uploader(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.LikeCount != 0 || len(created.LikedBy) != 0 {
		t.Errorf("like state = (%d, %v), want fresh", created.LikeCount, created.LikedBy)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestListNewestFirst_WithCursor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := mediastore.New(db)
	up := uploader()
	var posts []models.MediaPost
	for _, caption := range []string{"first", "second", "third"} {
		p, err := s.Create(ctx, models.MediaPost{
			URL:       "https://assets.example.com/" + caption,
			MediaKind: models.MediaKindImage,
			Caption:   caption,
			Uploader:  up,
		})
		if err != nil {
			t.Fatalf("Create %q: %v", caption, err)
		}
		posts = append(posts, p)
		time.Sleep(2 * time.Millisecond) // distinct created_at at bson precision
	}

	page, err := s.ListNewestFirst(ctx, time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListNewestFirst: %v", err)
	}
	if len(page) != 3 || page[0].Caption != "third" || page[2].Caption != "first" {
		t.Fatalf("order = %v", captions(page))
	}

	older, err := s.ListNewestFirst(ctx, posts[1].CreatedAt, 10)
	if err != nil {
		t.Fatalf("ListNewestFirst with cursor: %v", err)
	}
	if len(older) != 1 || older[0].Caption != "first" {
		t.Fatalf("cursor page = %v, want only the oldest", captions(older))
	}
}

func captions(posts []models.MediaPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Caption
	}
	return out
}

func TestToggleLike_InverseAndInvariant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := mediastore.New(db)
	post, err := s.Create(ctx, models.MediaPost{
		URL:       "https://assets.example.com/a.jpg",
		MediaKind: models.MediaKindImage,
		Uploader:  uploader(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	likes, liked, err := s.ToggleLike(ctx, post.ID, "device-1")
	if err != nil || likes != 1 || !liked {
		t.Fatalf("first toggle = (%d, %v, %v), want (1, true, nil)", likes, liked, err)
	}
	likes, liked, err = s.ToggleLike(ctx, post.ID, "device-2")
	if err != nil || likes != 2 || !liked {
		t.Fatalf("second device = (%d, %v, %v), want (2, true, nil)", likes, liked, err)
	}
	likes, liked, err = s.ToggleLike(ctx, post.ID, "device-1")
	if err != nil || likes != 1 || liked {
		t.Fatalf("unlike = (%d, %v, %v), want (1, false, nil)", likes, liked, err)
	}

	// like_count must equal the stored set size after the toggles.
	var raw struct {
		LikeCount int      `bson:"like_count"`
		LikedBy   []string `bson:"liked_by"`
	}
	err = db.Collection("media_posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&raw)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if raw.LikeCount != len(raw.LikedBy) {
		t.Errorf("like_count = %d, |liked_by| = %d; must be equal", raw.LikeCount, len(raw.LikedBy))
	}
	if raw.LikeCount != 1 || raw.LikedBy[0] != "device-2" {
		t.Errorf("state = (%d, %v)", raw.LikeCount, raw.LikedBy)
	}
}

func TestToggleLike_UnknownPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := mediastore.New(db).ToggleLike(ctx, primitive.NewObjectID(), "device-1")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("err = %v, want ErrNoDocuments", err)
	}
}

func TestToggleLike_EmptyDevice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := mediastore.New(db)
	post, err := s.Create(ctx, models.MediaPost{URL: "u", MediaKind: models.MediaKindImage, Uploader: uploader()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := s.ToggleLike(ctx, post.ID, ""); err == nil {
		t.Fatal("expected error for empty device id")
	}
}
