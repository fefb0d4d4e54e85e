package request

// CreateSessionRequest is the request body for creating a session. Zero
// dimensions fall back to the standard 10x20 grid.
type CreateSessionRequest struct {
	DisplayWidth  int `json:"display_width,omitempty"`
	DisplayHeight int `json:"display_height,omitempty"`
}

// PointerRequest is the request body for reporting a pointer position.
// X is the normalised horizontal coordinate in [0.0, 1.0].
type PointerRequest struct {
	X        float64 `json:"x"`
	Pointing bool    `json:"pointing"`
}
