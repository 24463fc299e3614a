// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON envelope helpers shared by every feature
// handler. All responses carry a "success" flag; errors add "error" with the
// client-facing message from the apperr taxonomy.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. Multipart uploads have their own
// limit at the parse site.
const maxBodyBytes = 1 << 20

// OK writes a 2xx JSON body. The payload map is merged with success:true.
func OK(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Fail maps err through the apperr taxonomy and writes the error envelope.
// Server-side causes are logged, never serialized.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   apperr.Message(err),
	})
}

// Decode reads a JSON request body into dst. Unknown fields are tolerated
// (clients across the app's history disagree on extras); malformed JSON is a
// validation error.
func Decode(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.Validation, "request body is required")
		}
		return apperr.Wrap(apperr.Validation, "malformed JSON body", err)
	}
	return nil
}
