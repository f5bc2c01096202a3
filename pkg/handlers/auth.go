package handlers

import (
	"minedicas/pkg/models"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuth(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /auth/login
func (ah *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseJSON(c, &req, services.MsgLoginFormat); err != nil {
		return err
	}

	resp, err := ah.auth.Login(req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, resp)
}
