package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory storage by default", func(t *testing.T) {
		// When: the storage is not set to redis
		gameRepo, closeRepo, err := newGameRepository(ctx, log, &config.Config{Storage: config.StorageMemory})

		// Then: an in-memory repository is returned
		require.NoError(t, err)
		defer closeRepo()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewEngine("1").Snapshot()))
	})

	t.Run("Redis storage", func(t *testing.T) {
		// Given: a running redis
		mini := miniredis.RunT(t)

		conf := &config.Config{
			Storage: config.StorageRedis,
			Redis:   config.Redis{Host: mini.Host(), Port: mini.Port(), TTL: time.Hour},
		}

		// When: the repository is created
		gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)

		// Then: games land in redis
		require.NoError(t, err)
		defer closeRepo()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewEngine("1").Snapshot()))
		assert.True(t, mini.Exists("tictactoe:game:1"))
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		// Given: redis config pointing at a stopped server
		mini := miniredis.RunT(t)
		conf := &config.Config{
			Storage: config.StorageRedis,
			Redis:   config.Redis{Host: mini.Host(), Port: mini.Port()},
		}
		mini.Close()

		// When: the repository is created
		_, _, err := newGameRepository(ctx, log, conf)

		// Then: the connection error is returned
		require.Error(t, err)
	})

	t.Run("Empty redis host", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, log, &config.Config{Storage: config.StorageRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
