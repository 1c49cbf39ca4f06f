package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nayeemhs/uniassist/internal/api"
	"github.com/nayeemhs/uniassist/internal/config"
)

// defaultMaxRequestBodySize is the default maximum allowed request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20

// Handler handles chat HTTP requests.
type Handler struct {
	svc         *Service
	rateLimiter *RateLimiter
	maxBodySize int64
}

// NewHandler creates a chat handler using the rate-limit and body-size
// settings from cfg.
func NewHandler(svc *Service, cfg *config.Config) *Handler {
	maxBodySize := int64(defaultMaxRequestBodySize)
	rateLimitRequests := 10
	rateLimitWindow := time.Minute
	if cfg != nil {
		maxBodySize = cfg.MaxRequestBodySize
		rateLimitRequests = cfg.RateLimit.RequestsPerWindow
		rateLimitWindow = cfg.RateLimit.WindowDuration
	}

	return &Handler{
		svc:         svc,
		rateLimiter: NewRateLimiter(rateLimitRequests, rateLimitWindow),
		maxBodySize: maxBodySize,
	}
}

// RateLimiter returns the handler's rate limiter so other transports
// (WebSocket chat) can share the same per-client budget.
func (h *Handler) RateLimiter() *RateLimiter {
	return h.rateLimiter
}

// HandleChat handles POST /api/chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	clientKey := clientAddr(r)
	if !h.rateLimiter.Allow(clientKey) {
		api.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	slog.Info("Chat request",
		"request_id", chiMiddleware.GetReqID(r.Context()),
		"student_id", req.StudentID,
		"history_turns", len(req.ConversationHistory),
		"message_length", len(req.Message),
	)

	result := h.svc.Handle(r.Context(), req)
	api.JSON(w, http.StatusOK, result)
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.HandleChat)
}

// clientAddr extracts the client host for rate limiting. The RealIP middleware
// has already rewritten RemoteAddr when the request came through a proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
