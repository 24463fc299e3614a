// internal/app/features/superadmins/handler_test.go
package superadmins_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/flockhub/internal/app/features/superadmins"
	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"github.com/dalemusser/flockhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *superadmins.Handler {
	return superadmins.NewHandler(superadminstore.New(db),
		token.NewMinter("test-signing-key-0123456789abcdef"), nil, zap.NewNop())
}

func registerForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRegister_Creates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	body, ct := registerForm(t, map[string]string{"name": " Root  Admin ", "password": "secret"})
	req := httptest.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SuperAdmin struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		} `json:"superadmin"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.SuperAdmin.Name != "Root Admin" {
		t.Errorf("name = %q, want collapsed %q", resp.SuperAdmin.Name, "Root Admin")
	}
	if resp.SuperAdmin.Password != "" {
		t.Error("password must never be serialized")
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	testutil.CreateSuperAdmin(t, db, "Root Admin", "pw")

	body, ct := registerForm(t, map[string]string{"name": "root  ADMIN", "password": "pw2"})
	req := httptest.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogin_ByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	testutil.CreateSuperAdmin(t, db, "Root Admin", "secret")

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"identifier":"ROOT admin","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.User.Role != "superadmin" {
		t.Errorf("role = %q", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"identifier":"ghost","password":"x"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
