package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWonByA  Status = "won_by_a"
	StatusWonByB  Status = "won_by_b"
	StatusTie     Status = "tie"
)

// IsTerminal reports whether no more moves are accepted in this status.
func (that Status) IsTerminal() bool {
	return that != StatusOngoing
}

// WinCombos is scanned in order; the first complete line decides the winner.
var WinCombos = [8][3]int{
	// rows
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	// columns
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	// diagonals
	{0, 4, 8},
	{2, 4, 6},
}

type Board [9]string

// IsFull reports whether every cell holds a mark.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Result is the outcome of Engine.Evaluate.
type Result struct {
	Status Status  `json:"status"`
	Winner *Player `json:"winner,omitempty"`
	Line   []int   `json:"line,omitempty"`
}

// Engine owns the board and both players of a single game.
// It is not safe for concurrent use.
type Engine struct {
	id       string
	board    Board
	players  [2]Player
	finished bool
}

func NewEngine(id string) *Engine {
	return &Engine{
		id:      id,
		players: newPlayers(),
	}
}

func (that *Engine) ID() string {
	return that.id
}

func (that *Engine) Board() Board {
	return that.board
}

func (that *Engine) Players() [2]Player {
	return that.players
}

func (that *Engine) IsFinished() bool {
	return that.finished
}

// ActivePlayer returns the player holding the turn.
func (that *Engine) ActivePlayer() Player {
	return that.players[that.activeIndex()]
}

// ApplyMove places the active player's mark into cell and passes the turn.
// Any invalid move leaves the engine untouched and returns false.
func (that *Engine) ApplyMove(cell int) bool {
	return that.Move(cell) == nil
}

// Move is ApplyMove that reports why a move was rejected.
func (that *Engine) Move(cell int) error {
	if that.finished || that.scan().Status.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.board[cell] = that.players[that.activeIndex()].Mark

	that.players[0].IsTurn = !that.players[0].IsTurn
	that.players[1].IsTurn = !that.players[1].IsTurn

	return nil
}

// Evaluate computes the game status from the board, records the winner
// and closes the game when the status is terminal. Calling it repeatedly
// yields the same result.
func (that *Engine) Evaluate() Result {
	result := that.scan()

	if result.Winner != nil {
		for i := range that.players {
			if that.players[i].Mark == result.Winner.Mark {
				that.players[i].Win = true

				winner := that.players[i]
				result.Winner = &winner
			}
		}
	}

	if result.Status.IsTerminal() {
		that.finished = true
	}

	return result
}

// Reset wipes the board and hands the first turn back to player A.
func (that *Engine) Reset() {
	that.board = Board{}
	that.players = newPlayers()
	that.finished = false
}

// scan is the side-effect free part of Evaluate.
func (that *Engine) scan() Result {
	for _, combo := range WinCombos {
		a, b, c := that.board[combo[0]], that.board[combo[1]], that.board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			winner := that.playerByMark(a)

			status := StatusWonByA
			if winner.ID == PlayerB {
				status = StatusWonByB
			}

			return Result{
				Status: status,
				Winner: &winner,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	if that.board.IsFull() {
		return Result{Status: StatusTie}
	}

	return Result{Status: StatusOngoing}
}

func (that *Engine) activeIndex() int {
	if that.players[1].IsTurn {
		return 1
	}

	return 0
}

func (that *Engine) playerByMark(mark string) Player {
	if that.players[1].Mark == mark {
		return that.players[1]
	}

	return that.players[0]
}
