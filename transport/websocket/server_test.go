package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

type testClient struct {
	t      *testing.T
	conn   *websocket.Conn
	cancel context.CancelFunc
}

func dial(t *testing.T) *testClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(New(logger, manager).Handler(ctx))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		srv.Close()
	})

	return &testClient{t: t, conn: conn, cancel: cancel}
}

func (that *testClient) send(action string, payload any) ResponsePayload {
	that.t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(that.t, err)

	require.NoError(that.t, that.conn.WriteJSON(Message{Action: action, Payload: raw}))

	return that.receive(action)
}

func (that *testClient) receive(action string) ResponsePayload {
	that.t.Helper()

	var message Message
	require.NoError(that.t, that.conn.ReadJSON(&message))
	require.Equal(that.t, action, message.Action)

	var payload ResponsePayload
	require.NoError(that.t, json.Unmarshal(message.Payload, &payload))

	return payload
}

func TestServer_GameFlow(t *testing.T) {
	client := dial(t)

	// Given: a new game
	created := client.send(ActionNewGame, struct{}{})
	require.Empty(t, created.Error)
	id := created.Game.ID

	// When: the cells of a tie are selected in turn
	var last ResponsePayload
	for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		last = client.send(ActionSelectCell, RequestPayload{GameID: id, Cell: &cell})
		require.True(t, *last.Accepted)
	}

	// Then: the game is tied
	assert.Equal(t, entity.StatusTie, last.Game.Result.Status)

	// When: the state is requested
	state := client.send(ActionGameState, RequestPayload{GameID: id})

	// Then: it matches the last update
	assert.Equal(t, last.Game, state.Game)

	// When: the game is reset
	reset := client.send(ActionResetGame, RequestPayload{GameID: id})

	// Then: the board is empty again
	assert.Equal(t, entity.Board{}, reset.Game.Board)
	assert.Equal(t, entity.StatusOngoing, reset.Game.Result.Status)
}

func TestServer_BadMessages(t *testing.T) {
	client := dial(t)

	t.Run("Occupied cell is rejected quietly", func(t *testing.T) {
		created := client.send(ActionNewGame, struct{}{})
		cell := 4

		first := client.send(ActionSelectCell, RequestPayload{GameID: created.Game.ID, Cell: &cell})
		second := client.send(ActionSelectCell, RequestPayload{GameID: created.Game.ID, Cell: &cell})

		assert.True(t, *first.Accepted)
		assert.False(t, *second.Accepted)
		assert.Empty(t, second.Error)
	})

	t.Run("Missing cell", func(t *testing.T) {
		resp := client.send(ActionSelectCell, RequestPayload{GameID: "123"})

		assert.Equal(t, "cell is required", resp.Error)
	})

	t.Run("Unknown game", func(t *testing.T) {
		resp := client.send(ActionGameState, RequestPayload{GameID: "404"})

		assert.Equal(t, "game not found", resp.Error)
	})

	t.Run("Unknown action", func(t *testing.T) {
		resp := client.send("game:undo", struct{}{})

		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Malformed json", func(t *testing.T) {
		require.NoError(t, client.conn.WriteMessage(websocket.TextMessage, []byte("{")))

		resp := client.receive("")

		assert.Equal(t, "malformed message", resp.Error)
	})
}

func TestServer_OversizedMessageClosesConnection(t *testing.T) {
	client := dial(t)

	// When: a message above the read limit is sent
	require.NoError(t, client.conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("x", maxMessageSize+1))))

	// Then: the server closes the connection instead of answering
	_, _, err := client.conn.ReadMessage()
	require.Error(t, err)
}

func TestServer_ShutdownClosesConnections(t *testing.T) {
	// Given: an open connection
	client := dial(t)
	require.Empty(t, client.send(ActionNewGame, struct{}{}).Error)

	// When: the server context is canceled
	client.cancel()

	// Then: the server drops the connection
	require.NoError(t, client.conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, _, err := client.conn.ReadMessage()
	require.Error(t, err)

	var netErr net.Error
	assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), "connection was not closed")
}

func TestServer_RejectsPlainHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(logger, nil).Handler(context.Background()))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
