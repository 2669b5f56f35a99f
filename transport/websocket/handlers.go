package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	ActionNewGame    = "game:new"
	ActionGameState  = "game:state"
	ActionSelectCell = "game:select"
	ActionResetGame  = "game:reset"
)

func (that *Server) handleNewGame(ctx context.Context, _ *Message) ResponsePayload {
	game, err := that.games.NewGame(ctx)
	if err != nil {
		return that.errorPayload(ActionNewGame, err)
	}

	return ResponsePayload{Game: game}
}

func (that *Server) handleGameState(ctx context.Context, message *Message) ResponsePayload {
	var request RequestPayload
	if err := json.Unmarshal(message.Payload, &request); err != nil || request.GameID == "" {
		return ResponsePayload{Error: "game_id is required"}
	}

	game, err := that.games.GetGame(ctx, request.GameID)
	if err != nil {
		return that.errorPayload(ActionGameState, err)
	}

	return ResponsePayload{Game: game}
}

func (that *Server) handleSelectCell(ctx context.Context, message *Message) ResponsePayload {
	var request RequestPayload
	if err := json.Unmarshal(message.Payload, &request); err != nil || request.GameID == "" {
		return ResponsePayload{Error: "game_id is required"}
	}

	if request.Cell == nil {
		return ResponsePayload{Error: "cell is required"}
	}

	game, accepted, err := that.games.SelectCell(ctx, request.GameID, *request.Cell)
	if err != nil {
		return that.errorPayload(ActionSelectCell, err)
	}

	return ResponsePayload{Game: game, Accepted: &accepted}
}

func (that *Server) handleResetGame(ctx context.Context, message *Message) ResponsePayload {
	var request RequestPayload
	if err := json.Unmarshal(message.Payload, &request); err != nil || request.GameID == "" {
		return ResponsePayload{Error: "game_id is required"}
	}

	game, err := that.games.ResetGame(ctx, request.GameID)
	if err != nil {
		return that.errorPayload(ActionResetGame, err)
	}

	return ResponsePayload{Game: game}
}

func (that *Server) errorPayload(action string, err error) ResponsePayload {
	if errors.Is(err, apperror.ErrGameNotFound) {
		return ResponsePayload{Error: apperror.ErrGameNotFound.Error()}
	}

	that.logger.Error("failed to process message", "action", action, "error", err)

	return ResponsePayload{Error: "internal error"}
}
