package handlers

import (
	"minedicas/pkg/models"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
)

type CommunityHandler struct {
	community services.CommunityService
}

func NewCommunity(community services.CommunityService) *CommunityHandler {
	return &CommunityHandler{community: community}
}

// GET /community/posts
func (h *CommunityHandler) ListPosts(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, h.community.ListPosts())
}

// GET /community/posts/:id
func (h *CommunityHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.community.GetPost(c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, post)
}

// POST /community/posts
func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := parseJSON(c, &req, services.MsgInvalidJSON); err != nil {
		return err
	}

	post, err := h.community.CreatePost(c.UserContext(), req, c.IP())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, post)
}

// POST /community/posts/:id/comments
func (h *CommunityHandler) CreateComment(c *fiber.Ctx) error {
	postID := c.Params("id")

	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		// post inexistente tem precedência sobre corpo malformado
		if _, err := h.community.GetPost(postID); err != nil {
			return err
		}
		return services.ErrValidation(services.MsgInvalidJSON, nil)
	}

	comment, err := h.community.CreateComment(c.UserContext(), postID, req, c.IP())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, comment)
}

// DELETE /community/posts/:id
func (h *CommunityHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.community.DeletePost(c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// DELETE /community/comments/:id
func (h *CommunityHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.community.DeleteComment(c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
