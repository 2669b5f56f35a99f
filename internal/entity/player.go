package entity

const (
	PlayerA = "A"
	PlayerB = "B"
)

// Player holds one side of a hot-seat game.
type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark"`
	IsTurn bool   `json:"is_turn"`
	Win    bool   `json:"win"`
}

func newPlayers() [2]Player {
	return [2]Player{
		{ID: PlayerA, Mark: MarkX, IsTurn: true},
		{ID: PlayerB, Mark: MarkO},
	}
}
