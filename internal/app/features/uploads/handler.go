// internal/app/features/uploads/handler.go

// Package uploads serves the media feed: multi-file uploads to the asset
// host, the newest-first feed with keyset paging, single-post reads, and
// the anonymous per-device like toggle.
package uploads

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/flockhub/internal/app/store/audit"
	mediastore "github.com/dalemusser/flockhub/internal/app/store/media"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/assets"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"github.com/dalemusser/flockhub/internal/app/system/inputval"
	"github.com/dalemusser/flockhub/internal/app/system/paging"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/timeouts"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadForm caps one multipart upload request across all files.
const maxUploadForm = 64 << 20

// Handler serves the upload and feed endpoints.
type Handler struct {
	Store   *mediastore.Store
	Assets  assets.Store
	Audit   *auditlog.Logger
	Log     *zap.Logger
	caption *bluemonday.Policy
}

func NewHandler(store *mediastore.Store, assetStore assets.Store, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   store,
		Assets:  assetStore,
		Audit:   auditLog,
		Log:     logger,
		caption: bluemonday.StrictPolicy(),
	}
}

// HandleUpload handles POST /upload.
//
// The form carries N files under "files", one shared caption under
// "comment", and the uploader snapshot fields. Every file is written to the
// asset host before its post document; a failure partway leaves the earlier
// posts in place and reports the error. An asset stored right before a
// failed document write is orphaned in the asset host; there is no rollback.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadForm); err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "malformed multipart form", err))
		return
	}

	meta := inputval.UploadMeta{
		Comment:      r.FormValue("comment"),
		UploaderID:   r.FormValue("uploader_id"),
		UploaderRole: r.FormValue("uploader_role"),
		UploaderName: r.FormValue("uploader_name"),
		UploaderLogo: r.FormValue("uploader_logo"),
	}
	if err := inputval.Check(meta); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	role, ok := models.ParseRole(meta.UploaderRole)
	if !ok {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "uploader_role must be one of campus, district, community, cell, superadmin"))
		return
	}
	uploaderID, err := primitive.ObjectIDFromHex(meta.UploaderID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "uploader_id must be a valid object id"))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "at least one file is required"))
		return
	}

	uploader := models.Uploader{
		ID:      uploaderID,
		Role:    role,
		Name:    meta.UploaderName,
		LogoURL: meta.UploaderLogo,
	}
	caption := h.caption.Sanitize(strings.TrimSpace(meta.Comment))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	posts := make([]models.MediaPost, 0, len(files))
	for _, header := range files {
		post, err := h.storeOne(ctx, header, caption, uploader)
		if err != nil {
			httpjson.Fail(w, h.Log, err)
			return
		}
		posts = append(posts, post)
	}

	h.Audit.Log(ctx, audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventMediaUploaded,
		SubjectID:   &uploader.ID,
		SubjectRole: uploader.Role,
		IP:          ratelimit.ClientIP(r),
		Success:     true,
		Details:     map[string]string{"files": strconv.Itoa(len(posts))},
	})

	httpjson.OK(w, http.StatusCreated, map[string]any{
		"uploads": posts,
	})
}

func (h *Handler) storeOne(ctx context.Context, header *multipart.FileHeader, caption string, uploader models.Uploader) (models.MediaPost, error) {
	file, err := header.Open()
	if err != nil {
		return models.MediaPost{}, apperr.Wrap(apperr.Validation, "unreadable file "+header.Filename, err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key := assets.ObjectKey("uploads", header.Filename)
	url, err := h.Assets.Put(ctx, key, file, contentType)
	if err != nil {
		return models.MediaPost{}, apperr.Wrap(apperr.Upstream, "asset upload failed", err)
	}

	post, err := h.Store.Create(ctx, models.MediaPost{
		URL:       url,
		MediaKind: mediaKind(contentType),
		Caption:   caption,
		Uploader:  uploader,
	})
	if err != nil {
		// The asset already landed; the orphan stays in the asset host.
		return models.MediaPost{}, apperr.Wrap(apperr.Upstream, "saving upload failed", err)
	}
	return post, nil
}

// mediaKind classifies by the declared content type only; bytes are never
// sniffed.
func mediaKind(contentType string) string {
	if strings.HasPrefix(contentType, "video") {
		return models.MediaKindVideo
	}
	return models.MediaKindImage
}

// HandleFeed handles GET /uploads and its historical alias GET /images.
// Query params: limit (default 50, max 200) and cursor (RFC3339Nano
// created_at of the last post seen).
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	limit := paging.ParseLimit(r)
	before, _ := paging.ParseBefore(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	posts, err := h.Store.ListNewestFirst(ctx, before, int64(limit)+1)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "feed query failed", err))
		return
	}
	hasNext := paging.TrimPage(&posts, limit)

	payload := map[string]any{"uploads": posts}
	if hasNext && len(posts) > 0 {
		payload["next_cursor"] = posts[len(posts)-1].CreatedAt.Format(time.RFC3339Nano)
	}
	httpjson.OK(w, http.StatusOK, payload)
}

// HandleGet handles GET /uploads/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "id must be a valid object id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	post, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, h.Log, apperr.New(apperr.NotFound, "upload not found"))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "lookup failed", err))
		return
	}

	httpjson.OK(w, http.StatusOK, map[string]any{
		"upload": post,
	})
}

// HandleLike handles POST /uploads/{id}/like, toggling the caller's device
// in the post's like set.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "id must be a valid object id"))
		return
	}

	var req inputval.LikeToggle
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := inputval.Check(req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	likes, liked, err := h.Store.ToggleLike(ctx, id, req.DeviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, h.Log, apperr.New(apperr.NotFound, "upload not found"))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "like toggle failed", err))
		return
	}

	httpjson.OK(w, http.StatusOK, map[string]any{
		"likes": likes,
		"liked": liked,
	})
}
