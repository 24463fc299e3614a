// internal/app/features/livefeed/handler.go

// Package livefeed proxies the YouTube Data API live-stream search for the
// configured channel. The endpoint is optional: without an API key it
// reports 503 instead of failing startup.
package livefeed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/dalemusser/flockhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

const searchURL = "https://www.googleapis.com/youtube/v3/search"

// maxUpstreamBody caps how much of the YouTube response is passed through.
const maxUpstreamBody = 1 << 20

// Handler proxies live-stream lookups to YouTube.
type Handler struct {
	APIKey    string
	ChannelID string
	SearchURL string // overridden in tests
	Client    *http.Client
	Log       *zap.Logger
}

func NewHandler(apiKey, channelID string, logger *zap.Logger) *Handler {
	return &Handler{
		APIKey:    apiKey,
		ChannelID: channelID,
		SearchURL: searchURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
		Log:       logger,
	}
}

// Configured reports whether the proxy has what it needs to serve requests.
func (h *Handler) Configured() bool {
	return h.APIKey != "" && h.ChannelID != ""
}

// Serve handles GET /livefeed. The YouTube search response body is passed
// through unmodified on success.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if !h.Configured() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "live feed is not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", h.ChannelID)
	q.Set("eventType", "live")
	q.Set("type", "video")
	q.Set("key", h.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.SearchURL+"?"+q.Encode(), nil)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "live feed request failed", err))
		return
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "live feed lookup failed", err))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Upstream, "live feed read failed", err))
		return
	}
	if resp.StatusCode != http.StatusOK {
		h.Log.Warn("youtube search returned non-200",
			zap.Int("status", resp.StatusCode))
		httpjson.Fail(w, h.Log, apperr.New(apperr.Upstream, "live feed upstream error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
