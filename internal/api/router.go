package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gesturelabs/gestris/internal/api/handler"
	"github.com/gesturelabs/gestris/internal/api/middleware"
	"github.com/gesturelabs/gestris/internal/api/response"
	"github.com/gesturelabs/gestris/internal/services/game"
	"github.com/gesturelabs/gestris/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.HubManager, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session lifecycle
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods(http.MethodDelete)

	// Transitions
	api.HandleFunc("/sessions/{id}/start", sessionHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/pause", sessionHandler.Pause).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/reset", sessionHandler.Reset).Methods(http.MethodPost)

	// Camera-derived input
	api.HandleFunc("/sessions/{id}/pointer", sessionHandler.Pointer).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/gestures/fist", sessionHandler.FistGesture).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/gestures/two-finger", sessionHandler.TwoFingerGesture).Methods(http.MethodPost)

	// Snapshots
	api.HandleFunc("/sessions/{id}/snapshot", sessionHandler.SaveSnapshot).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/restore", sessionHandler.RestoreSnapshot).Methods(http.MethodPost)

	// State stream
	api.HandleFunc("/sessions/{id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
