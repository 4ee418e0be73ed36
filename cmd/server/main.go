package main

import (
	"flag"
	"os"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/search"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	configPath := flag.String("config", os.Getenv("CHESS_CONFIG"), "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	app := newApp(cfg)
	log.Infow("listening", "addr", cfg.Addr, "computer", cfg.Computer, "clockSeconds", cfg.ClockSeconds)
	log.Fatal(app.Listen(cfg.Addr))
}

func newApp(cfg config.Config) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	computer, _ := model.ParseColor(cfg.Computer)
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, search.NewEngine(cfg.ResolvedSeed()), service.Defaults{
		Computer: computer,
		Clock:    cfg.Clock(),
	})

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId", middleware.RequireGameID(), middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	// Set up REST routes
	api := app.Group("/api")
	api.Post("/game", gameController.CreateGame)
	gameRoutes := api.Group("/game")
	gameRoutes.Get("/:gameId", middleware.RequireGameID(), gameController.GetGameState)
	gameRoutes.Delete("/:gameId", middleware.RequireGameID(), gameController.RemoveGame)
	gameRoutes.Post("/:gameId/select", middleware.RequireGameID(), gameController.Select)
	gameRoutes.Post("/:gameId/undo", middleware.RequireGameID(), gameController.Undo)
	gameRoutes.Post("/:gameId/computer", middleware.RequireGameID(), gameController.ComputerMove)

	return app
}
