package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/engine"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/entity"
)

const (
	revealTimeout  = 5 * time.Second
	botMovesBuffer = 16
)

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player) (*entity.Game, error)
	StartGame(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)

	BotMoves() <-chan *entity.Game
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService

	revealDelay time.Duration
	botMoves    chan *entity.Game
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	botService BotService,
	revealDelay time.Duration,
) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		revealDelay:   revealDelay,
		botMoves:      make(chan *entity.Game, botMovesBuffer),
	}
}

// BotMoves - delivers games updated by a revealed bot move.
func (that *gamePlayService) BotMoves() <-chan *entity.Game {
	return that.botMoves
}

func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		game, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed to create new game: %w", err)
		}

		return game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// StartGame - creates a game for the player, or restarts the existing one
// with a fresh board. A restart invalidates any bot move still waiting to be
// revealed: the board it was planned against no longer matches.
func (that *gamePlayService) StartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		game, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed to create new game: %w", err)
		}

		return game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game.Restart()

	if err = that.assignMarks(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to assign marks: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.scheduleBotTurnIfDue(game)

	return game, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.scheduleBotTurnIfDue(game)

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	botPlayer := entity.NewBotPlayer(game.ID)
	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusOngoing

	if err = that.assignMarks(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to assign marks: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game with bot: %w", err)
	}

	that.scheduleBotTurnIfDue(game)

	return game, nil
}

// assignMarks - deals random marks to the human and the bot and persists both.
func (that *gamePlayService) assignMarks(ctx context.Context, game *entity.Game) error {
	humanMark, botMark := game.GetRandomMarks()

	for _, player := range game.Players {
		if player.IsBot() {
			player.Mark = botMark
		} else {
			player.Mark = humanMark
		}

		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			return fmt.Errorf("failed to update player %s: %w", player.ID, err)
		}
	}

	return nil
}

// scheduleBotTurnIfDue - plans the bot's answer right away, but reveals it
// only after the configured delay. The planned move is tagged with the board
// it was computed from; revealBotTurn drops it if the live game has moved on.
func (that *gamePlayService) scheduleBotTurnIfDue(game *entity.Game) {
	log := that.logger.With("method", "scheduleBotTurnIfDue", "gameID", game.ID)

	botPlayer := game.BotPlayer()
	if botPlayer == nil || !game.IsOngoing() || game.Turn != botPlayer.Mark {
		return
	}

	cell, err := that.botService.PlanTurn(game)
	if err != nil {
		log.Error("failed to plan bot turn", "error", err)
		return
	}

	snapshot := game.Board
	gameID := game.ID
	botMark := botPlayer.Mark

	time.AfterFunc(that.revealDelay, func() {
		that.revealBotTurn(gameID, snapshot, botMark, cell)
	})
}

func (that *gamePlayService) revealBotTurn(gameID string, snapshot engine.Board, botMark engine.Mark, cell int) {
	log := that.logger.With("method", "revealBotTurn", "gameID", gameID)

	ctx, cancel := context.WithTimeout(context.Background(), revealTimeout)
	defer cancel()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return
	}

	if !game.IsOngoing() || game.Board != snapshot || game.Turn != botMark {
		log.Info("discarding stale bot move", "cell", cell)
		return
	}

	if err = game.MakeTurn(botMark, cell); err != nil {
		log.Error("bot failed to make turn", "error", err)
		return
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		log.Error("failed to update game", "error", err)
		return
	}

	select {
	case that.botMoves <- game:
	default:
		log.Warn("bot moves channel is full, dropping update")
	}
}

func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "CleanupGame", "gameID", game.ID)

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.GameID = ""
		player.Mark = engine.Empty
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to update player", "playerID", player.ID, "error", err)
		}
	}
}
