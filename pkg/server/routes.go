package server

import (
	"time"

	"minedicas/pkg/handlers"
	"minedicas/pkg/hub"
	"minedicas/pkg/middleware"
	"minedicas/pkg/ratelimit"
	"minedicas/pkg/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Deps struct {
	Auth      services.AuthService
	Tips      services.TipsService
	Community services.CommunityService
	Hub       *hub.Hub

	RateLimitMax    int
	RateLimitWindow time.Duration
	// Now alimenta o limitador; nil usa time.Now.
	Now func() time.Time
}

// Mount registra as rotas públicas em /api/v1/external e as do painel em /api/v1/internal.
func Mount(app *fiber.App, d Deps) {
	auth := handlers.NewAuth(d.Auth)
	publicTips := handlers.NewTips(d.Tips, services.VisibilityPublished)
	adminTips := handlers.NewTips(d.Tips, services.VisibilityAll)
	community := handlers.NewCommunity(d.Community)

	// uma única instância: posts e comentários dividem o mesmo log por IP
	postLimiter := limiter.New(limiter.Config{
		Max:        d.RateLimitMax,
		Expiration: d.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return services.ErrRateLimited()
		},
		LimiterMiddleware: ratelimit.Handler{Now: d.Now},
	})

	external := app.Group("/api/v1/external")
	external.Post("/auth/login", auth.Login)
	external.Get("/tips", publicTips.Listar)
	external.Get("/tips/:id", publicTips.BuscarPorID)
	external.Get("/community/posts", community.ListPosts)
	external.Get("/community/posts/:id", community.GetPost)
	external.Post("/community/posts", postLimiter, community.CreatePost)
	external.Post("/community/posts/:id/comments", postLimiter, community.CreateComment)

	internal := app.Group("/api/v1/internal", middleware.AuthMiddleware(d.Auth))
	internal.Get("/tips", adminTips.Listar)
	internal.Get("/tips/:id", adminTips.BuscarPorID)
	internal.Post("/tips", adminTips.Criar)
	internal.Put("/tips/:id", adminTips.Atualizar)
	internal.Delete("/tips/:id", adminTips.Deletar)
	internal.Delete("/community/posts/:id", community.DeletePost)
	internal.Delete("/community/comments/:id", community.DeleteComment)

	if d.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			return c.Next()
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			d.Hub.HandleClientConn(c)
		}))
	}
}
