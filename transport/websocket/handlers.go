package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/apperror"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/engine"
	"github.com/ClayMicholaz/tictactoe-minimax/internal/entity"
)

const (
	payloadActionGameLeave = "game:leave"
	gameStatusLeave        = "leave"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, bufrw)

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, gameErr := that.uGame.GetGameByPlayerID(ctx, player.ID)
		if gameErr != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", gameErr)
			return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
		}

		payloadResp.Game = maskGameDetails(game)
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

// handleNewGame - starts a game against the bot, or resets the current one
// to a fresh board. Any bot move still pending for the old board is dropped
// by the gameplay layer once the board no longer matches.
func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.uGame.StartGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to start a new game")
	}

	log.Info("game started", "gameID", game.ID)

	that.broadcastGame(log, msg.Action, game)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Cell is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.uGame.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)

	// an occupied cell or a bad index is a no-op for the board; tell the
	// client and keep the game as it was
	if errors.Is(err, engine.ErrInvalidMove) || errors.Is(err, apperror.ErrNotYourTurn) {
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", game.ID, err))
	}

	if errors.Is(err, apperror.ErrGameIsNotStarted) || errors.Is(err, apperror.ErrGameFinished) {
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", game.ID, err))
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("failed to turn in game %v", err))
	}

	log.Info("Player made a turn", "gameID", game.ID, "cell", *payloadReq.Cell)

	that.broadcastGame(log, msg.Action, game)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameLeave")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.uGame.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
	}

	if err = that.uGame.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to leave the game")
	}

	game.Status = gameStatusLeave

	that.broadcastGame(log, payloadActionGameLeave, game)

	log.Info("Player leaving", "gameID", game.ID)

	return nil
}

func (that *Server) registerConnection(playerID string, bufrw *bufio.ReadWriter) {
	that.connectionsMutex.Lock()
	that.connections[playerID] = bufrw
	that.connectionsMutex.Unlock()
}

// broadcastGame - sends the game state to every human player in it.
func (that *Server) broadcastGame(log *slog.Logger, action string, game *entity.Game) {
	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   maskGameDetails(game),
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

// maskGameDetails hides sensitive details from the game payload.
func maskGameDetails(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil
	return &masked
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
