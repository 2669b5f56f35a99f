package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const playHelp = "cells are numbered 1-9 from the top left; r resets, q quits"

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func newPlayCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := loadConfig()
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "q",
			})
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			defer rl.Close()

			session := newPlaySession(logger, rl, cmd.OutOrStdout())

			return session.run()
		},
	}
}

// playSession is the terminal counterpart of the browser page: it turns
// typed cell numbers into moves and renders the engine's answer.
type playSession struct {
	logger *slog.Logger
	input  lineReader
	out    io.Writer
	engine *entity.Engine
}

func newPlaySession(logger *slog.Logger, input lineReader, out io.Writer) *playSession {
	return &playSession{
		logger: logger.With("component", "play"),
		input:  input,
		out:    out,
		engine: entity.NewEngine(uuid.NewString()),
	}
}

func (that *playSession) run() error {
	fmt.Fprintln(that.out, playHelp)
	that.render(that.engine.Evaluate())

	for {
		line, err := that.input.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch command := strings.ToLower(strings.TrimSpace(line)); command {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "r", "reset":
			that.engine.Reset()
			that.render(that.engine.Evaluate())
		default:
			that.selectCell(command)
		}
	}
}

func (that *playSession) selectCell(command string) {
	number, err := strconv.Atoi(command)
	if err != nil {
		fmt.Fprintf(that.out, "unknown command %q, %s\n", command, playHelp)
		return
	}

	moveErr := that.engine.Move(number - 1)
	result := that.engine.Evaluate()

	if moveErr != nil {
		that.logger.Debug("move rejected", "cell", number-1, "reason", moveErr)
		fmt.Fprintln(that.out, rejectionMessage(moveErr))
		that.setPrompt(result)
		return
	}

	that.render(result)
}

func (that *playSession) render(result entity.Result) {
	fmt.Fprint(that.out, formatBoard(that.engine.Board()))

	switch result.Status {
	case entity.StatusWonByA:
		fmt.Fprintln(that.out, "Player 1 wins! (r to play again)")
	case entity.StatusWonByB:
		fmt.Fprintln(that.out, "Player 2 wins! (r to play again)")
	case entity.StatusTie:
		fmt.Fprintln(that.out, "It's a tie! (r to play again)")
	case entity.StatusOngoing:
	}

	that.setPrompt(result)
}

func (that *playSession) setPrompt(result entity.Result) {
	if result.Status.IsTerminal() {
		that.input.SetPrompt("game over> ")
		return
	}

	that.input.SetPrompt(that.engine.ActivePlayer().Mark + "> ")
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "the game is over, r starts a new one"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is taken"
	default:
		return "pick a cell between 1 and 9"
	}
}

// formatBoard draws the grid, showing the number of each free cell.
func formatBoard(board entity.Board) string {
	var sb strings.Builder

	for row := range 3 {
		cells := make([]string, 3)
		for col := range 3 {
			idx := row*3 + col

			cells[col] = board[idx]
			if cells[col] == entity.EmptyCell {
				cells[col] = strconv.Itoa(idx + 1)
			}
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	return sb.String()
}
