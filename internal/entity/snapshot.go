package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidSnapshot = errors.New("invalid game snapshot")

// Snapshot is the serialisable form of an Engine, used by stores and transports.
type Snapshot struct {
	ID       string    `json:"id"`
	Board    Board     `json:"board"`
	Turn     string    `json:"player_turn"`
	Players  [2]Player `json:"players"`
	Finished bool      `json:"finished"`
	Result   Result    `json:"result"`
}

// Snapshot captures the engine state. It does not evaluate the board.
func (that *Engine) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		ID:       that.id,
		Board:    that.board,
		Players:  that.players,
		Finished: that.finished,
		Result:   that.scan(),
	}

	if !snapshot.Result.Status.IsTerminal() {
		snapshot.Turn = that.ActivePlayer().Mark
	}

	return snapshot
}

// Restore rebuilds an engine from a snapshot.
func Restore(snapshot *Snapshot) (*Engine, error) {
	if snapshot == nil || snapshot.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidSnapshot)
	}

	for i, cell := range snapshot.Board {
		if cell != EmptyCell && cell != MarkX && cell != MarkO {
			return nil, fmt.Errorf("%w: cell %d holds %q", ErrInvalidSnapshot, i, cell)
		}
	}

	if snapshot.Players[0].ID != PlayerA || snapshot.Players[1].ID != PlayerB {
		return nil, fmt.Errorf("%w: unexpected player ids", ErrInvalidSnapshot)
	}

	if snapshot.Players[0].Mark != MarkX || snapshot.Players[1].Mark != MarkO {
		return nil, fmt.Errorf("%w: unexpected player marks", ErrInvalidSnapshot)
	}

	if snapshot.Players[0].IsTurn == snapshot.Players[1].IsTurn {
		return nil, fmt.Errorf("%w: exactly one player must hold the turn", ErrInvalidSnapshot)
	}

	return &Engine{
		id:       snapshot.ID,
		board:    snapshot.Board,
		players:  snapshot.Players,
		finished: snapshot.Finished,
	}, nil
}
