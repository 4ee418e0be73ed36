package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	state, err := gc.gameService.CreateGame(req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(gameID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var sel model.SimpleMove
	if err := c.BodyParser(&sel); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if !sel.From.InBounds() || !sel.To.InBounds() {
		return errorResponse(c, model.ErrOutOfBounds)
	}

	result, err := gc.gameService.Select(gameID(c), sel)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	state, err := gc.gameService.Undo(gameID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ComputerMove(c *fiber.Ctx) error {
	state, err := gc.gameService.ComputerMove(gameID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) RemoveGame(c *fiber.Ctx) error {
	if err := gc.gameService.RemoveGame(gameID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func gameID(c *fiber.Ctx) string {
	if id, ok := c.Locals("gameID").(string); ok {
		return id
	}
	return c.Params("gameId")
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidFEN),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, service.ErrBadRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, model.ErrGameOver):
		status = fiber.StatusConflict
	default:
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
