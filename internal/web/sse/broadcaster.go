package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/gesturelabs/gestris/internal/api/response"
	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/services/game"
)

// Broadcaster pushes engine state changes to SSE clients
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastState broadcasts a session's full state as a "state" event.
// Sessions without a hub (nobody watching) are skipped.
func (b *Broadcaster) BroadcastState(st game.State) {
	hub := b.hubManager.GetHub(st.SessionID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.GameStateFromEngine(st))
	if err != nil {
		b.logger.Error("sse failed to marshal state",
			slog.String("session", string(st.SessionID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent("state", string(data))
}

// BroadcastSessionDeleted tells clients the session is gone and tears
// down its hub
func (b *Broadcaster) BroadcastSessionDeleted(id model.SessionID) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}

	hub.BroadcastEvent("session-deleted", string(id))
	b.hubManager.RemoveHub(id)
}

// FormatStateEvent renders a session state as a raw SSE "state" frame,
// used to seed newly connected clients
func FormatStateEvent(st game.State) []byte {
	data, err := json.Marshal(response.GameStateFromEngine(st))
	if err != nil {
		return nil
	}
	return formatSSEMessage("state", string(data))
}
