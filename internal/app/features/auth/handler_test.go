// internal/app/features/auth/handler_test.go
package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/flockhub/internal/app/features/auth"
	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeSource struct {
	role     models.Role
	name     string
	password string
}

func (f fakeSource) Role() models.Role { return f.role }

func (f fakeSource) Find(_ context.Context, identifier string) (identity.Record, string, error) {
	if identifier != f.name {
		return identity.Record{}, "", mongo.ErrNoDocuments
	}
	return identity.Record{
		ID:   primitive.NewObjectID(),
		Role: f.role,
		Name: f.name,
	}, f.password, nil
}

func newHandler(sources ...identity.Source) *auth.Handler {
	return auth.NewHandler(
		identity.NewFromSources(sources...),
		token.NewMinter("test-signing-key-0123456789abcdef"),
		nil, // audit logging is optional in tests
		zap.NewNop(),
	)
}

func post(t *testing.T, h *auth.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/universal-login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleUniversalLogin(rec, req)
	return rec
}

func TestUniversalLogin_Success(t *testing.T) {
	h := newHandler(fakeSource{role: models.RoleCampus, name: "north", password: "secret"})

	rec := post(t, h, `{"identifier":"north","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Role string `json:"role"`
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != "campus" || resp.User.Name != "north" {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestUniversalLogin_UnknownIdentifier(t *testing.T) {
	h := newHandler(fakeSource{role: models.RoleCampus, name: "north", password: "secret"})

	rec := post(t, h, `{"identifier":"ghost","password":"secret"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUniversalLogin_WrongPassword(t *testing.T) {
	h := newHandler(fakeSource{role: models.RoleCampus, name: "north", password: "secret"})

	rec := post(t, h, `{"identifier":"north","password":"wrong"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestUniversalLogin_MissingBody(t *testing.T) {
	h := newHandler()

	rec := post(t, h, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRoutes_RateLimit(t *testing.T) {
	h := newHandler(fakeSource{role: models.RoleCampus, name: "north", password: "secret"})
	limiter := ratelimit.New(2, time.Minute)
	router := chi.NewRouter()
	auth.Register(router, h, limiter)

	body := `{"identifier":"north","password":"wrong"}`
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/universal-login", strings.NewReader(body))
		req.RemoteAddr = "203.0.113.9:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third attempt status = %d, want %d", last, http.StatusTooManyRequests)
	}
}
