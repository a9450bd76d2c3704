package service

import (
	"errors"
	"fmt"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/engine"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	PlanTurn(game *entity.Game) (int, error)
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// PlanTurn - computes the bot's best cell without touching the game.
// The bot searches the full game tree, so it plays optimally every turn.
func (that *botService) PlanTurn(game *entity.Game) (int, error) {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return 0, ErrBotNotFound
	}

	cell, err := engine.SelectMove(game.Board, botPlayer.Mark)
	if errors.Is(err, engine.ErrNoLegalMoves) {
		return 0, fmt.Errorf("%w: %w", ErrNoAvailableMoves, err)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to select move: %w", err)
	}

	return cell, nil
}

// MakeTurn - computes and immediately applies the bot's move.
func (that *botService) MakeTurn(game *entity.Game) error {
	cell, err := that.PlanTurn(game)
	if err != nil {
		return err
	}

	botPlayer := game.BotPlayer()
	if err = game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
