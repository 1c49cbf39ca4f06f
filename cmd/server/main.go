// University admission assistant server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/nayeemhs/uniassist/internal/api"
	"github.com/nayeemhs/uniassist/internal/catalog"
	"github.com/nayeemhs/uniassist/internal/chat"
	"github.com/nayeemhs/uniassist/internal/config"
	"github.com/nayeemhs/uniassist/internal/middleware"
	"github.com/nayeemhs/uniassist/internal/prompt"
	"github.com/nayeemhs/uniassist/internal/provider"
	"github.com/nayeemhs/uniassist/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("Failed to load university catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("University catalog loaded", "universities", cat.Len())

	// Initialize handlers.
	healthHandler := api.NewHealthHandler(repo, cat, cfg.ChatEnabled())
	studentHandler := api.NewStudentHandler(repo)
	universityHandler := api.NewUniversityHandler(cat)

	// Chat handlers are only wired when a provider API key is configured.
	var chatHandler *chat.Handler
	var wsHandler *chat.WebSocketHandler
	if cfg.ChatEnabled() {
		gemini := provider.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		assembler := prompt.NewAssembler(cat)
		svc := chat.NewService(repo, assembler, gemini, cfg.ProfileUpsert)

		chatHandler = chat.NewHandler(svc, cfg)
		wsHandler = chat.NewWebSocketHandler(svc, chatHandler.RateLimiter(), cfg.FrontendURL, cfg.IsDevelopment())
		slog.Info("Chat enabled", "model", cfg.GeminiModel, "profile_upsert", cfg.ProfileUpsert)
	} else {
		slog.Info("Chat disabled (GEMINI_API_KEY not set)")
	}

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	// Routes.
	healthHandler.RegisterRoutes(r)
	studentHandler.RegisterRoutes(r)
	universityHandler.RegisterRoutes(r)
	if chatHandler != nil {
		chatHandler.RegisterRoutes(r)
		r.Get("/ws/chat", wsHandler.ServeHTTP)
	}

	// Create server.
	// Note: WebSocket chat connections are long-lived (no WriteTimeout).
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout for WebSocket support
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
