// internal/app/features/units/handler.go

// Package units serves registration, login, and read endpoints for the four
// organizational-unit collections. One Handler instance is mounted per
// variant; the role picks the store, the asset key prefix, and the response
// envelope key.
package units

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/flockhub/internal/app/store/audit"
	unitstore "github.com/dalemusser/flockhub/internal/app/store/units"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/assets"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/dalemusser/flockhub/internal/app/system/inputval"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/timeouts"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxRegisterForm caps the multipart registration form, logo included.
const maxRegisterForm = 8 << 20

// Handler serves one unit variant.
type Handler struct {
	Role     models.Role
	Stores   map[models.Role]*unitstore.Store
	Assets   assets.Store
	Resolver *identity.Resolver
	Minter   *token.Minter
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler builds the handler for one variant. stores must contain every
// unit role so single gets can populate parent refs; login probes only this
// variant's collection.
func NewHandler(stores map[models.Role]*unitstore.Store, role models.Role, assetStore assets.Store, minter *token.Minter, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Role:     role,
		Stores:   stores,
		Assets:   assetStore,
		Resolver: identity.New([]*unitstore.Store{stores[role]}, nil),
		Minter:   minter,
		Audit:    auditLog,
		Log:      logger,
	}
}

func (h *Handler) store() *unitstore.Store { return h.Stores[h.Role] }

// HandleRegister handles POST /register (multipart form).
//
// Fields: name, email, password, plus the parent id fields this variant
// carries, plus an optional logo file. The logo is stored in the asset host
// first; registration proceeds without a logo URL only when no file was sent.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterForm); err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "malformed multipart form", err))
		return
	}

	req := inputval.RegisterUnit{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		CampusID:    r.FormValue("campus_id"),
		DistrictID:  r.FormValue("district_id"),
		CommunityID: r.FormValue("community_id"),
	}
	if err := inputval.Check(req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	unit := models.OrgUnit{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.setParents(&unit, req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		key := assets.ObjectKey("logos/"+h.Role.String(), header.Filename)
		url, putErr := h.Assets.Put(ctx, key, file, header.Header.Get("Content-Type"))
		if putErr != nil {
			httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "logo upload failed", putErr))
			return
		}
		unit.LogoURL = url
	}

	created, err := h.store().Create(ctx, unit)
	if err != nil {
		httpjson.Fail(w, h.Log, createErr(err))
		return
	}

	h.Audit.Log(ctx, audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventUnitRegistered,
		SubjectID:   &created.ID,
		SubjectRole: created.Role,
		IP:          ratelimit.ClientIP(r),
		Success:     true,
		Details:     map[string]string{"name": created.Name},
	})

	httpjson.OK(w, http.StatusCreated, map[string]any{
		h.Role.String(): created,
	})
}

// setParents copies the variant-appropriate parent refs onto the unit.
// Fields that do not belong to the variant are ignored rather than
// rejected, matching how clients have always sent the full field set.
func (h *Handler) setParents(unit *models.OrgUnit, req inputval.RegisterUnit) error {
	parse := func(field, hex string) (*primitive.ObjectID, error) {
		if hex == "" {
			return nil, nil
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, apperr.New(apperr.Validation, field+" must be a valid object id")
		}
		return &id, nil
	}

	var err error
	switch h.Role {
	case models.RoleDistrict:
		unit.CampusID, err = parse("campus_id", req.CampusID)
	case models.RoleCommunity:
		unit.DistrictID, err = parse("district_id", req.DistrictID)
	case models.RoleCell:
		if unit.CampusID, err = parse("campus_id", req.CampusID); err != nil {
			return err
		}
		if unit.DistrictID, err = parse("district_id", req.DistrictID); err != nil {
			return err
		}
		unit.CommunityID, err = parse("community_id", req.CommunityID)
	}
	return err
}

// HandleLogin handles POST /login against this variant's collection only.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req inputval.Login
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

	rec, err := h.Resolver.Resolve(ctx, req.Identifier, req.Password)
	if err != nil {
		h.auditLoginFailure(ctx, r, err)
		httpjson.Fail(w, h.Log, err)
		return
	}

	tok, err := h.Minter.Mint(rec)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "token encoding failed", err))
		return
	}

	h.Audit.Log(ctx, audit.Event{
		Category:    audit.CategoryAuth,
		EventType:   audit.EventLoginSuccess,
		SubjectID:   &rec.ID,
		SubjectRole: rec.Role,
		IP:          ratelimit.ClientIP(r),
		Success:     true,
	})

	httpjson.OK(w, http.StatusOK, map[string]any{
		"user":  rec,
		"token": tok,
	})
}

func (h *Handler) auditLoginFailure(ctx context.Context, r *http.Request, err error) {
	event := audit.Event{
		Category:    audit.CategoryAuth,
		SubjectRole: h.Role,
		IP:          ratelimit.ClientIP(r),
		Success:     false,
	}
	switch {
	case apperr.IsKind(err, apperr.NotFound):
		event.EventType = audit.EventLoginFailedNotFound
		event.FailureReason = "no matching account"
	case apperr.IsKind(err, apperr.InvalidCredentials):
		event.EventType = audit.EventLoginFailedWrongPassword
		event.FailureReason = "wrong password"
	default:
		return
	}
	h.Audit.Log(ctx, event)
}

// HandleList handles GET /. Units come back ordered by folded name under
// the collection's plural key.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	units, err := h.store().List(ctx)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "listing failed", err))
		return
	}

	httpjson.OK(w, http.StatusOK, map[string]any{
		h.Role.Collection(): units,
	})
}

// HandleGet handles GET /{id}, populating whichever parent refs the record
// carries. A dangling ref is reported as null rather than failing the get.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "id must be a valid object id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	unit, err := h.store().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, h.Log, apperr.New(apperr.NotFound, h.Role.String()+" not found"))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "lookup failed", err))
		return
	}

	payload := map[string]any{h.Role.String(): unit}
	h.populateParent(ctx, payload, models.RoleCampus, unit.CampusID)
	h.populateParent(ctx, payload, models.RoleDistrict, unit.DistrictID)
	h.populateParent(ctx, payload, models.RoleCommunity, unit.CommunityID)

	httpjson.OK(w, http.StatusOK, payload)
}

func (h *Handler) populateParent(ctx context.Context, payload map[string]any, role models.Role, id *primitive.ObjectID) {
	if id == nil || role == h.Role {
		return
	}
	parent, err := h.Stores[role].GetByID(ctx, *id)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("parent lookup failed",
				zap.String("role", role.String()),
				zap.String("id", id.Hex()),
				zap.Error(err))
		}
		payload[role.String()] = nil
		return
	}
	payload[role.String()] = parent
}

// createErr maps store errors onto the taxonomy.
func createErr(err error) error {
	if errors.Is(err, unitstore.ErrDuplicate) {
		return apperr.Wrap(apperr.Conflict, err.Error(), err)
	}
	return apperr.Wrap(apperr.Upstream, "registration failed", err)
}
