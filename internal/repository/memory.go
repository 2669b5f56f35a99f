package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Snapshot
}

// NewMemoryGameRepository keeps games in process memory.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Snapshot),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = copySnapshot(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	existingGame := copySnapshot(&game)

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// copySnapshot detaches the result's pointer and slice from the caller.
func copySnapshot(game *entity.Snapshot) entity.Snapshot {
	snapshot := *game

	if game.Result.Winner != nil {
		winner := *game.Result.Winner
		snapshot.Result.Winner = &winner
	}

	if game.Result.Line != nil {
		snapshot.Result.Line = append([]int(nil), game.Result.Line...)
	}

	return snapshot
}
