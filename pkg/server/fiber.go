package server

import (
	"errors"
	"log"

	"minedicas/pkg/envelope"
	"minedicas/pkg/middleware"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(name, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:           name,
		ReduceMemoryUsage: true,
		Immutable:         true,
		ErrorHandler:      errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[HTTP] ${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(middleware.CORSConfig(corsOrigins)))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})

	return app
}

// errorHandler traduz qualquer erro devolvido por um handler para o envelope de falha.
func errorHandler(c *fiber.Ctx, err error) error {
	if se, ok := services.AsServiceError(err); ok {
		return c.Status(se.Status).JSON(envelope.Failure(se.Code, se.Message, se.Details))
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(envelope.Failure(codeForStatus(fe.Code), fe.Message, nil))
	}

	log.Printf("[SERVER] Erro interno em %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).
		JSON(envelope.Failure("INTERNAL_ERROR", "Erro interno", nil))
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return services.CodeUnauthorized
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return services.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUpgradeRequired:
		return "UPGRADE_REQUIRED"
	case fiber.StatusUnprocessableEntity:
		return services.CodeValidation
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return services.CodeRateLimit
	}
	if status >= 500 {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}
