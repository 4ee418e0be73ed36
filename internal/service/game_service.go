package service

import (
	"fmt"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Defaults apply to games created without explicit settings.
type Defaults struct {
	Computer model.Color
	Clock    time.Duration
}

type GameService struct {
	gameManager *GameManager
	chooser     model.MoveChooser
	defaults    Defaults
}

func NewGameService(gameManager *GameManager, chooser model.MoveChooser, defaults Defaults) *GameService {
	return &GameService{
		gameManager: gameManager,
		chooser:     chooser,
		defaults:    defaults,
	}
}

// CreateRequest is the body of a new game request. A nil Computer uses the
// configured default; an empty FEN starts from the standard position.
type CreateRequest struct {
	Computer *string `json:"computer"`
	FEN      string  `json:"fen"`
}

type SelectResult struct {
	Accepted bool           `json:"accepted"`
	State    model.Snapshot `json:"state"`
}

func (gs *GameService) CreateGame(req CreateRequest) (model.Snapshot, error) {
	state := model.NewGameState()
	if req.FEN != "" {
		var err error
		if state, err = model.ParseFEN(req.FEN); err != nil {
			return model.Snapshot{}, fmt.Errorf("failed to create game: %w", err)
		}
	}

	computer := gs.defaults.Computer
	if req.Computer != nil {
		c, ok := model.ParseColor(*req.Computer)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("failed to create game: %w: computer side %q", ErrBadRequest, *req.Computer)
		}
		computer = c
	}

	game := gs.gameManager.CreateGame(state, computer, gs.defaults.Clock)
	gs.replyIfComputer(game)
	return game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.GetState(), nil
}

// Select submits two squares. A rejected selection leaves the game untouched
// and is not an error.
func (gs *GameService) Select(gameID string, sel model.SimpleMove) (SelectResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return SelectResult{}, err
	}

	accepted, _ := game.Select(sel.From, sel.To)
	if accepted {
		gs.replyIfComputer(game)
		game.BroadcastState()
	}
	return SelectResult{Accepted: accepted, State: game.GetState()}, nil
}

// Undo takes back one ply, or two when that would hand the move to the
// computer, so a human is on move afterwards.
func (gs *GameService) Undo(gameID string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}

	if game.Undo() && game.ComputerToMove() {
		if !game.Undo() {
			gs.replyIfComputer(game)
		}
	}
	game.BroadcastState()
	return game.GetState(), nil
}

// ComputerMove has the engine play for whichever side is to move.
func (gs *GameService) ComputerMove(gameID string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}

	if _, err := game.PlayComputerMove(gs.chooser); err != nil {
		return game.GetState(), err
	}
	game.BroadcastState()
	return game.GetState(), nil
}

func (gs *GameService) replyIfComputer(game *model.Game) {
	if !game.ComputerToMove() {
		return
	}
	move, err := game.PlayComputerMove(gs.chooser)
	if err != nil {
		log.Warnw("computer could not move", "game", game.ID, "error", err)
		return
	}
	log.Debugw("computer replied", "game", game.ID, "move", move.Notation())
}

func (gs *GameService) RegisterConnection(gameID string, connID string, conn *websocket.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	game.RegisterConnection(connID, conn)
	return nil
}

func (gs *GameService) UnregisterConnection(gameID string, connID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}

// SendTo writes one message to a single observer of a game.
func (gs *GameService) SendTo(gameID, connID string, t ws.MessageType, payload any) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return game.SendTo(connID, msg)
}

func (gs *GameService) RemoveGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}
