package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("gameID").(string)
	connID := uuid.New().String()

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, connID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "error", err)
		if msg, err := ws.NewMessage(ws.MessageTypeError, fiber.Map{"error": err.Error()}); err == nil {
			c.WriteJSON(msg)
		}
		c.Close()
		return
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "game", gameID, "conn", connID, "error", err)
			break
		}

		// Handle different types of WebSocket messages
		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Debugw("parse error", "game", gameID, "error", err)
				wsc.sendError(gameID, connID, "malformed message")
				continue
			}

			if err := wsc.handleMessage(gameID, connID, msg); err != nil {
				log.Debugw("handle error", "game", gameID, "type", msg.Type, "error", err)
				wsc.sendError(gameID, connID, err.Error())
			}
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, connID)
}

// Handle different types of incoming messages. Accepted changes reach every
// observer through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID, connID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var sel model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return err
		}
		if !sel.From.InBounds() || !sel.To.InBounds() {
			return model.ErrOutOfBounds
		}
		result, err := wsc.gameService.Select(gameID, sel)
		if err != nil {
			return err
		}
		if !result.Accepted {
			return wsc.gameService.SendTo(gameID, connID, ws.MessageTypeRejected, result)
		}
		return nil

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID)
		return err

	case ws.MessageTypeComputer:
		_, err := wsc.gameService.ComputerMove(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(gameID, connID, errorMsg string) {
	if err := wsc.gameService.SendTo(gameID, connID, ws.MessageTypeError, fiber.Map{"error": errorMsg}); err != nil {
		log.Debugw("failed to send error", "game", gameID, "conn", connID, "error", err)
	}
}
