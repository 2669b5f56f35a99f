package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id"`
	Cell   *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game     *entity.Snapshot `json:"game,omitempty"`
	Accepted *bool            `json:"accepted,omitempty"`
	Error    string           `json:"error,omitempty"`
}
