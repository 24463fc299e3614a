package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", New(Validation, "name is required"), http.StatusBadRequest},
		{"conflict", New(Conflict, "already registered"), http.StatusBadRequest},
		{"invalid credentials", New(InvalidCredentials, "incorrect password"), http.StatusBadRequest},
		{"not found", New(NotFound, "no such post"), http.StatusNotFound},
		{"upstream", Wrap(Upstream, "storage failed", errors.New("boom")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesUnclassifiedCause(t *testing.T) {
	if got := Message(errors.New("connection string leaked")); got != "internal server error" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(New(Validation, "email is required")); got != "email is required" {
		t.Errorf("Message = %q", got)
	}
}

func TestWrappedErrorsSurviveFmtWrapping(t *testing.T) {
	inner := New(NotFound, "no such post")
	outer := fmt.Errorf("like toggle: %w", inner)

	if Status(outer) != http.StatusNotFound {
		t.Errorf("Status through fmt wrap = %d, want 404", Status(outer))
	}
	if !IsKind(outer, NotFound) {
		t.Error("IsKind failed through fmt wrap")
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(Upstream, "database unavailable", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find wrapped cause")
	}
}
