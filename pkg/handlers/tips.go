package handlers

import (
	"minedicas/pkg/middleware"
	"minedicas/pkg/models"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
)

// TipsHandler serve as dicas. A instância pública enxerga só as publicadas,
// a do painel enxerga também os rascunhos.
type TipsHandler struct {
	tips services.TipsService
	vis  services.Visibility
}

func NewTips(tips services.TipsService, vis services.Visibility) *TipsHandler {
	return &TipsHandler{tips: tips, vis: vis}
}

// GET /tips?category=
func (h *TipsHandler) Listar(c *fiber.Ctx) error {
	tips, err := h.tips.Listar(c.Query("category"), h.vis)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, tips)
}

// GET /tips/:id
func (h *TipsHandler) BuscarPorID(c *fiber.Ctx) error {
	tip, err := h.tips.BuscarPorID(c.Params("id"), h.vis)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, tip)
}

// POST /tips
func (h *TipsHandler) Criar(c *fiber.Ctx) error {
	var req models.CriarTipRequest
	if err := parseJSON(c, &req, services.MsgInvalidJSON); err != nil {
		return err
	}

	principal, _ := middleware.PrincipalFrom(c.UserContext())
	tip, err := h.tips.Criar(req, principal.ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, tip)
}

// PUT /tips/:id
func (h *TipsHandler) Atualizar(c *fiber.Ctx) error {
	var req models.AtualizarTipRequest
	if err := parseJSON(c, &req, services.MsgInvalidJSON); err != nil {
		return err
	}

	tip, err := h.tips.Atualizar(c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, tip)
}

// DELETE /tips/:id
func (h *TipsHandler) Deletar(c *fiber.Ctx) error {
	if err := h.tips.Deletar(c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, messageResponse{Message: "Tip deleted successfully"})
}
