// service/game_manager.go
package service

import (
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrBadRequest   = errors.New("bad request")
)

// GameManager owns the in-memory sessions for the life of the process.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(state *model.GameState, computer model.Color, clock time.Duration) *model.Game {
	gameID := uuid.New().String()
	game := model.NewGame(gameID, state, computer, clock)

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Infow("game created", "game", gameID, "computer", computer, "fen", state.FEN())
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	log.Infow("game removed", "game", gameID)
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
