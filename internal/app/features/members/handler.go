// internal/app/features/members/handler.go

// Package members serves the member directory: JSON registration plus list
// and single-record reads. Members never log in, so there is no password or
// credential handling here.
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/flockhub/internal/app/store/audit"
	memberstore "github.com/dalemusser/flockhub/internal/app/store/members"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"github.com/dalemusser/flockhub/internal/app/system/inputval"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/timeouts"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the member endpoints.
type Handler struct {
	Store *memberstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(store *memberstore.Store, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLog, Log: logger}
}

// HandleRegister handles POST /register (JSON body).
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req inputval.RegisterMember
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := inputval.Check(req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	member := models.Member{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.DistrictID != "" {
		id, err := primitive.ObjectIDFromHex(req.DistrictID)
		if err != nil {
			httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "district_id must be a valid object id"))
			return
		}
		member.DistrictID = &id
	}
	if req.CellID != "" {
		id, err := primitive.ObjectIDFromHex(req.CellID)
		if err != nil {
			httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "cell_id must be a valid object id"))
			return
		}
		member.CellID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	created, err := h.Store.Create(ctx, member)
	if err != nil {
		if errors.Is(err, memberstore.ErrDuplicateEmail) {
			httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Conflict, err.Error(), err))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "registration failed", err))
		return
	}

	h.Audit.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMemberRegistered,
		SubjectID: &created.ID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": created.Email},
	})

	httpjson.OK(w, http.StatusCreated, map[string]any{
		"member": created,
	})
}

// HandleList handles GET /. Members come back ordered by folded full name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	members, err := h.Store.List(ctx)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "listing failed", err))
		return
	}

	httpjson.OK(w, http.StatusOK, map[string]any{
		"members": members,
	})
}

// HandleGet handles GET /{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "id must be a valid object id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	member, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, h.Log, apperr.New(apperr.NotFound, "member not found"))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "lookup failed", err))
		return
	}

	httpjson.OK(w, http.StatusOK, map[string]any{
		"member": member,
	})
}
