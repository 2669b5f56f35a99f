package cli

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type scriptedInput struct {
	lines   []string
	prompts []string
}

func (that *scriptedInput) Readline() (string, error) {
	if len(that.lines) == 0 {
		return "", io.EOF
	}

	line := that.lines[0]
	that.lines = that.lines[1:]

	return line, nil
}

func (that *scriptedInput) SetPrompt(prompt string) {
	that.prompts = append(that.prompts, prompt)
}

func runScript(t *testing.T, lines ...string) (*playSession, *scriptedInput, string) {
	t.Helper()

	input := &scriptedInput{lines: lines}
	var out bytes.Buffer

	session := newPlaySession(slog.New(slog.NewTextHandler(io.Discard, nil)), input, &out)
	require.NoError(t, session.run())

	return session, input, out.String()
}

func TestPlaySession(t *testing.T) {
	t.Run("Top row win", func(t *testing.T) {
		// When: the players type 1 4 2 5 3
		session, input, out := runScript(t, "1", "4", "2", "5", "3")

		// Then: player 1 wins and the prompt closes the game
		assert.Contains(t, out, "Player 1 wins!")
		assert.Equal(t, "game over> ", input.prompts[len(input.prompts)-1])
		assert.True(t, session.engine.IsFinished())
	})

	t.Run("Rejected input keeps the board", func(t *testing.T) {
		// When: a cell is taken twice, then out of range and garbage is typed
		session, input, out := runScript(t, "5", "5", "0", "10", "abc")

		// Then: each problem is reported and only the first move counts
		assert.Contains(t, out, "that cell is taken")
		assert.Contains(t, out, "pick a cell between 1 and 9")
		assert.Contains(t, out, `unknown command "abc"`)
		assert.Equal(t, entity.Board{4: entity.MarkX}, session.engine.Board())
		assert.Equal(t, "O> ", input.prompts[len(input.prompts)-1])
	})

	t.Run("Reset after a tie", func(t *testing.T) {
		// When: a tie is played, a move is attempted, and the board is reset
		session, _, out := runScript(t, "1", "2", "3", "5", "4", "6", "8", "7", "9", "1", "r", "q", "5")

		// Then: the tie is announced, the late move refused and the board cleared
		assert.Contains(t, out, "It's a tie!")
		assert.Contains(t, out, "the game is over")
		assert.Equal(t, entity.Board{}, session.engine.Board())
	})
}

func TestFormatBoard(t *testing.T) {
	board := entity.Board{0: entity.MarkX, 4: entity.MarkO}

	assert.Equal(t, ""+
		" X | 2 | 3\n"+
		"---+---+---\n"+
		" 4 | O | 6\n"+
		"---+---+---\n"+
		" 7 | 8 | 9\n", formatBoard(board))
}
