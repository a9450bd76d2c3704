package entity

import (
	"fmt"
	"math/rand"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/apperror"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	WinnerTie = "-"
)

type Game struct {
	ID      string       `json:"id"`
	Board   engine.Board `json:"board"`
	Winner  string       `json:"winner"`
	Status  string       `json:"status"`
	Turn    engine.Mark  `json:"player_turn"`
	Players []*Player    `json:"players,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  engine.Board{},
		Turn:   engine.X,
		Status: StatusWaiting,
	}
}

// Restart - clears the board and puts the game back into play.
// The players keep their seats, marks are reassigned by the caller.
func (that *Game) Restart() {
	that.Board = engine.Board{}
	that.Turn = engine.X
	that.Winner = ""
	that.Status = StatusOngoing
}

// MakeTurn - applies a move for playerMark and advances the game state.
func (that *Game) MakeTurn(playerMark engine.Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := engine.ApplyMove(that.Board, cell, playerMark)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.updateState()

	return nil
}

// updateState - rederives winner and status from the board after a move.
func (that *Game) updateState() {
	switch outcome := engine.Evaluate(that.Board); outcome {
	case engine.XWins, engine.OWins:
		that.Winner = string(outcome.Winner())
		that.Status = StatusFinished
		that.Turn = engine.Empty
	case engine.Draw:
		that.Winner = WinnerTie
		that.Status = StatusFinished
		that.Turn = engine.Empty
	default:
		that.Turn = that.Turn.Opponent()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

// BotPlayer - returns the automated player of the game, nil if there is none.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Game) GetRandomMarks() (engine.Mark, engine.Mark) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return engine.X, engine.O
	}
	return engine.O, engine.X
}
