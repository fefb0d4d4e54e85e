package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gesturelabs/gestris/internal/api/request"
	"github.com/gesturelabs/gestris/internal/api/response"
	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/services/game"
	"github.com/gesturelabs/gestris/internal/web/sse"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gameController *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &SessionHandler{
		gameController: gameController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default dimensions
		req = request.CreateSessionRequest{}
	}

	st, err := h.gameController.CreateSession(r.Context(), req.DisplayWidth, req.DisplayHeight)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromEngine(st))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	states := h.gameController.ListStates()

	summaries := make([]response.SessionSummary, len(states))
	for i, st := range states {
		summaries[i] = response.SessionSummaryFromEngine(st)
	}

	response.JSON(w, http.StatusOK, response.SessionList{Sessions: summaries})
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.GetState(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromEngine(st))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if err := h.gameController.DeleteSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastSessionDeleted(id)
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.Start(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromEngine(st))
}

// Pause handles POST /api/v1/sessions/{id}/pause
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.Pause(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromEngine(st))
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.Reset(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromEngine(st))
}

// Pointer handles POST /api/v1/sessions/{id}/pointer
func (h *SessionHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	var req request.PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.X < 0 || req.X > 1 {
		WriteError(w, NewInvalidRequestError("X must be within [0.0, 1.0]"))
		return
	}

	if err := h.gameController.PointerMoved(id, req.X, req.Pointing); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// FistGesture handles POST /api/v1/sessions/{id}/gestures/fist
func (h *SessionHandler) FistGesture(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if err := h.gameController.FistGesture(id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// TwoFingerGesture handles POST /api/v1/sessions/{id}/gestures/two-finger
func (h *SessionHandler) TwoFingerGesture(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	if err := h.gameController.TwoFingerGesture(id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SaveSnapshot handles POST /api/v1/sessions/{id}/snapshot
func (h *SessionHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	snapshot, err := h.gameController.SaveSnapshot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SnapshotFromModel(snapshot))
}

// RestoreSnapshot handles POST /api/v1/sessions/{id}/restore
func (h *SessionHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.RestoreSnapshot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromEngine(st))
}

// Events handles GET /api/v1/sessions/{id}/events
// Streams state changes to the client as SSE "state" events
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	st, err := h.gameController.GetState(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, sse.FormatStateEvent(st))
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}
