package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager drives games on behalf of the UI adapters. Interactions with
// the same game run one at a time; different games do not block each other.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	locksMutex sync.Mutex
	locks      map[string]*gameLock
}

// gameLock is dropped from the map once no caller holds or waits on it.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		locks:    make(map[string]*gameLock),
	}
}

// NewGame starts a fresh game with player A on turn.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Snapshot, error) {
	engine := entity.NewEngine(uuid.NewString())
	engine.Evaluate()

	snapshot := engine.Snapshot()
	if err := that.gameRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", snapshot.ID)

	return snapshot, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Snapshot, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// SelectCell handles one "cell selected" signal: the move is applied and the
// board evaluated. An invalid move is not an error; it comes back with
// accepted set to false and the game unchanged.
func (that *GameManager) SelectCell(ctx context.Context, id string, cell int) (*entity.Snapshot, bool, error) {
	log := that.logger.With("method", "SelectCell", "gameID", id, "cell", cell)

	unlock := that.lock(id)
	defer unlock()

	engine, err := that.loadEngine(ctx, id)
	if err != nil {
		return nil, false, err
	}

	moveErr := engine.Move(cell)
	// evaluated even for rejected moves, the result is the same
	result := engine.Evaluate()

	if moveErr != nil {
		log.Debug("move rejected", "reason", moveErr)
		return engine.Snapshot(), false, nil
	}

	snapshot := engine.Snapshot()
	if err = that.gameRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to update game: %w", err)
	}

	if result.Status.IsTerminal() {
		log.Info("game finished", "status", result.Status)
	}

	return snapshot, true, nil
}

// ResetGame clears the board of an existing game.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Snapshot, error) {
	unlock := that.lock(id)
	defer unlock()

	engine, err := that.loadEngine(ctx, id)
	if err != nil {
		return nil, err
	}

	engine.Reset()

	snapshot := engine.Snapshot()
	if err = that.gameRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	that.logger.Info("game reset", "gameID", id)

	return snapshot, nil
}

// EndGame drops a game from the store.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) loadEngine(ctx context.Context, id string) (*entity.Engine, error) {
	snapshot, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := entity.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return engine, nil
}

func (that *GameManager) lock(id string) func() {
	that.locksMutex.Lock()
	gl, ok := that.locks[id]
	if !ok {
		gl = &gameLock{}
		that.locks[id] = gl
	}
	gl.refs++
	that.locksMutex.Unlock()

	gl.mu.Lock()

	return func() {
		gl.mu.Unlock()

		that.locksMutex.Lock()
		gl.refs--
		if gl.refs == 0 {
			delete(that.locks, id)
		}
		that.locksMutex.Unlock()
	}
}
