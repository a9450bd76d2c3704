package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/apperror"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/entity"
)

var errSomeError = errors.New("some error")

type stubPlayerService struct {
	players   map[string]*entity.Player
	createErr error
	getErr    error
}

func (that *stubPlayerService) CreatePlayer(_ context.Context) (*entity.Player, error) {
	if that.createErr != nil {
		return nil, that.createErr
	}

	player := &entity.Player{ID: "new-player"}
	that.players[player.ID] = player
	return player, nil
}

func (that *stubPlayerService) GetPlayerByID(_ context.Context, id string) (*entity.Player, error) {
	if that.getErr != nil {
		return nil, that.getErr
	}

	player, ok := that.players[id]
	if !ok {
		return nil, errSomeError
	}
	return player, nil
}

type stubGamePlayService struct {
	game       *entity.Game
	turnErr    error
	cleanedUp  []string
	botUpdates chan *entity.Game
}

func (that *stubGamePlayService) GetOrCreateGame(_ context.Context, _ *entity.Player) (*entity.Game, error) {
	return that.game, nil
}

func (that *stubGamePlayService) StartGame(_ context.Context, _ string) (*entity.Game, error) {
	return that.game, nil
}

func (that *stubGamePlayService) MakeTurn(_ context.Context, _ string, _ int) (*entity.Game, error) {
	return that.game, that.turnErr
}

func (that *stubGamePlayService) CleanupGame(_ context.Context, game *entity.Game) {
	that.cleanedUp = append(that.cleanedUp, game.ID)
}

func (that *stubGamePlayService) BotMoves() <-chan *entity.Game {
	return that.botUpdates
}

func newStubs() (*stubPlayerService, *stubGamePlayService) {
	return &stubPlayerService{players: make(map[string]*entity.Player)},
		&stubGamePlayService{game: entity.NewGame("game-1"), botUpdates: make(chan *entity.Game, 1)}
}

func TestGameUseCase_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when playerID is empty", func(t *testing.T) {
		// Given: a player service able to create players
		players, gamePlay := newStubs()
		useCase := NewGameUseCase(players, gamePlay)

		// When: calling GetOrCreatePlayer with an empty playerID
		player, err := useCase.GetOrCreatePlayer(ctx, "")

		// Then: a new player should be created
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
	})

	t.Run("Returns existing player when playerID is known", func(t *testing.T) {
		// Given: a stored player
		players, gamePlay := newStubs()
		existing := &entity.Player{ID: "player123"}
		players.players[existing.ID] = existing
		useCase := NewGameUseCase(players, gamePlay)

		// When: calling GetOrCreatePlayer with the known ID
		player, err := useCase.GetOrCreatePlayer(ctx, "player123")

		// Then: the existing player should be returned
		require.NoError(t, err)
		assert.Equal(t, existing, player)
	})

	t.Run("Returns error when creation fails", func(t *testing.T) {
		// Given: a player service that fails on create
		players, gamePlay := newStubs()
		players.createErr = errSomeError
		useCase := NewGameUseCase(players, gamePlay)

		// When: calling GetOrCreatePlayer with an empty playerID
		player, err := useCase.GetOrCreatePlayer(ctx, "")

		// Then: the error is propagated
		require.ErrorIs(t, err, errSomeError)
		assert.Nil(t, player)
	})
}

func TestGameUseCase_GetGameByPlayerID(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the player's game", func(t *testing.T) {
		// Given: a player attached to a game
		players, gamePlay := newStubs()
		players.players["p1"] = &entity.Player{ID: "p1", GameID: gamePlay.game.ID}
		useCase := NewGameUseCase(players, gamePlay)

		// When: the game is looked up by player
		game, err := useCase.GetGameByPlayerID(ctx, "p1")

		// Then: the game should be returned
		require.NoError(t, err)
		assert.Equal(t, gamePlay.game, game)
	})

	t.Run("Error when the player has no game", func(t *testing.T) {
		// Given: a player without a game
		players, gamePlay := newStubs()
		players.players["p1"] = &entity.Player{ID: "p1"}
		useCase := NewGameUseCase(players, gamePlay)

		// When: the game is looked up by player
		_, err := useCase.GetGameByPlayerID(ctx, "p1")

		// Then: an ErrNoActiveGames error should be returned
		require.ErrorIs(t, err, apperror.ErrNoActiveGames)
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Passes the turn through", func(t *testing.T) {
		players, gamePlay := newStubs()
		useCase := NewGameUseCase(players, gamePlay)

		game, err := useCase.MakeTurn(ctx, "p1", 4)

		require.NoError(t, err)
		assert.Equal(t, gamePlay.game, game)
	})

	t.Run("Propagates turn errors with the game state", func(t *testing.T) {
		// Given: a gameplay service rejecting the turn
		players, gamePlay := newStubs()
		gamePlay.turnErr = apperror.ErrNotYourTurn
		useCase := NewGameUseCase(players, gamePlay)

		// When: the turn is made
		game, err := useCase.MakeTurn(ctx, "p1", 4)

		// Then: the error surfaces and the current game state comes along
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, gamePlay.game, game)
	})
}

func TestGameUseCase_EndGame(t *testing.T) {
	ctx := context.Background()

	// Given: a running game
	players, gamePlay := newStubs()
	useCase := NewGameUseCase(players, gamePlay)

	// When: the game is ended
	err := useCase.EndGame(ctx, gamePlay.game)

	// Then: cleanup ran for that game
	require.NoError(t, err)
	assert.Equal(t, []string{gamePlay.game.ID}, gamePlay.cleanedUp)
}
