package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with every route registered.
func NewApp(service AccountService, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "accounts-transfer-service",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := NewAccountsHandler(service, logger)
	accounts := app.Group("/v1/accounts")
	accounts.Post("/", h.CreateAccount)
	accounts.Post("/transfer", h.Transfer)
	accounts.Get("/:id", h.GetAccount)

	return app
}
