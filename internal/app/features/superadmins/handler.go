// internal/app/features/superadmins/handler.go

// Package superadmins serves registration and login for superadmin
// accounts. Superadmins carry no email, logo, or parent refs; only their
// globally unique display name identifies them.
package superadmins

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/flockhub/internal/app/store/audit"
	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/dalemusser/flockhub/internal/app/system/inputval"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/timeouts"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"go.uber.org/zap"
)

const maxRegisterForm = 1 << 20

// Handler serves the superadmin endpoints.
type Handler struct {
	Store    *superadminstore.Store
	Resolver *identity.Resolver
	Minter   *token.Minter
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(store *superadminstore.Store, minter *token.Minter, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Resolver: identity.New(nil, store),
		Minter:   minter,
		Audit:    auditLog,
		Log:      logger,
	}
}

// HandleRegister handles POST /register. The route takes the same multipart
// form as the unit variants; only name and password apply here.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterForm); err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "malformed multipart form", err))
		return
	}

	req := inputval.RegisterSuperAdmin{
		Name:     r.FormValue("name"),
		Password: r.FormValue("password"),
	}
	if err := inputval.Check(req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	created, err := h.Store.Create(ctx, models.SuperAdmin{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, superadminstore.ErrDuplicate) {
			httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Conflict, err.Error(), err))
			return
		}
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "registration failed", err))
		return
	}

	h.Audit.Log(ctx, audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventUnitRegistered,
		SubjectID:   &created.ID,
		SubjectRole: models.RoleSuperAdmin,
		IP:          ratelimit.ClientIP(r),
		Success:     true,
		Details:     map[string]string{"name": created.Name},
	})

	httpjson.OK(w, http.StatusCreated, map[string]any{
		"superadmin": created,
	})
}

// HandleLogin handles POST /login against the superadmins collection only.
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
