package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
)

// WebSocketHandler serves chat over a WebSocket connection: one JSON Request
// in, one JSON Result out, per message. Useful for frontends that keep a
// single live connection instead of posting each turn.
type WebSocketHandler struct {
	svc           *Service
	rateLimiter   *RateLimiter
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a new WebSocket chat handler sharing the HTTP
// handler's rate limiter.
func NewWebSocketHandler(svc *Service, limiter *RateLimiter, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		svc:           svc,
		rateLimiter:   limiter,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientKey := clientAddr(r)
	slog.Info("WebSocket chat connection request", "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		req, err := readRequest(ctx, ws)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled) {
				slog.Info("WebSocket chat disconnected", "ip", r.RemoteAddr)
				return
			}
			slog.Warn("WebSocket read failed", "error", err)
			return
		}

		if req.Message == "" {
			if err := h.writeJSON(ctx, ws, &Result{
				Response: "",
				Status:   StatusError,
				Error:    "message is required",
			}); err != nil {
				return
			}
			continue
		}

		if !h.rateLimiter.Allow(clientKey) {
			if err := h.writeJSON(ctx, ws, &Result{
				Status: StatusError,
				Error:  "rate_limited",
			}); err != nil {
				return
			}
			continue
		}

		result := h.svc.Handle(ctx, *req)
		if err := h.writeJSON(ctx, ws, result); err != nil {
			slog.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}

func readRequest(ctx context.Context, ws *websocket.Conn) (*Request, error) {
	_, data, err := ws.Read(ctx)
	if err != nil {
		return nil, err
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return &Request{}, nil // surfaced as "message is required"
	}
	return &req, nil
}

func (h *WebSocketHandler) writeJSON(ctx context.Context, ws *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}

// checkOrigin validates the request origin against the configured frontend URL.
// Development mode accepts any origin.
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev || h.allowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return strings.HasPrefix(origin, h.allowedOrigin)
}
