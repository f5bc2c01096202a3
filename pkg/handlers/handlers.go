package handlers

import (
	"minedicas/pkg/envelope"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(envelope.Success(data))
}

type messageResponse struct {
	Message string `json:"message"`
}

// parseJSON decodifica o corpo; qualquer falha vira VALIDATION_ERROR com a mensagem dada.
func parseJSON(c *fiber.Ctx, out interface{}, message string) error {
	if err := c.BodyParser(out); err != nil {
		return services.ErrValidation(message, nil)
	}
	return nil
}
