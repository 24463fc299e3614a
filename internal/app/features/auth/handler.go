// internal/app/features/auth/handler.go

// Package auth serves the universal login endpoints. Both routes share one
// handler: /universal-login2 exists because deployed clients call either
// path and the behavior was never meant to differ.
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/flockhub/internal/app/store/audit"
	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/dalemusser/flockhub/internal/app/system/inputval"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/timeouts"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"go.uber.org/zap"
)

// Handler resolves credentials against the full login cascade.
type Handler struct {
	Resolver *identity.Resolver
	Minter   *token.Minter
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(resolver *identity.Resolver, minter *token.Minter, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Resolver: resolver,
		Minter:   minter,
		Audit:    auditLog,
		Log:      logger,
	}
}

// HandleUniversalLogin handles POST /universal-login and
// POST /universal-login2.
//
// Success: 200 {success:true, user:{id,role,name,email?,logo_url?}, token}.
// No identifier match: 404. Wrong password: 400.
func (h *Handler) HandleUniversalLogin(w http.ResponseWriter, r *http.Request) {
	var req inputval.Login
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := inputval.Check(req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	rec, err := h.Resolver.Resolve(ctx, req.Identifier, req.Password)
	if err != nil {
		h.auditFailure(ctx, r, err)
		httpjson.Fail(w, h.Log, err)
		return
	}

	token, err := h.Minter.Mint(rec)
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
		"token": token,
	})
}

func (h *Handler) auditFailure(ctx context.Context, r *http.Request, err error) {
	event := audit.Event{
		Category: audit.CategoryAuth,
		IP:       ratelimit.ClientIP(r),
		Success:  false,
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
