package main

import (
	"log"

	"minedicas/pkg/captcha"
	"minedicas/pkg/config"
	"minedicas/pkg/hub"
	"minedicas/pkg/repository"
	"minedicas/pkg/server"
	"minedicas/pkg/services"
)

func main() {
	cfg := config.Load()

	admins, err := repository.NewAdminRepository(cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptRounds)
	if err != nil {
		log.Fatalf("[MINEDICAS] Falha ao semear admin: %v", err)
	}

	auth, err := services.NewAuthService(admins, services.AuthConfig{
		Secret:     cfg.JWTSecret,
		TTL:        cfg.JWTExpiresIn,
		BcryptCost: cfg.BcryptRounds,
	})
	if err != nil {
		log.Fatalf("[MINEDICAS] Falha ao iniciar autenticação: %v", err)
	}

	var verifier services.CaptchaVerifier = captcha.NewMock(cfg.CaptchaFailToken)
	if cfg.RemoteCaptcha() {
		verifier = captcha.NewSiteVerifier(cfg.CaptchaVerifyURL, cfg.CaptchaSecret)
		log.Printf("[MINEDICAS] Captcha remoto em %s", cfg.CaptchaVerifyURL)
	}

	wsHub := hub.New()

	tips := services.NewTipsService(repository.NewTipsRepository(nil), wsHub)
	community := services.NewCommunityService(
		repository.NewPostsRepository(nil),
		repository.NewCommentsRepository(nil),
		verifier,
		wsHub,
	)

	app := server.NewApp("minedicas", cfg.CORSOrigins)
	server.Mount(app, server.Deps{
		Auth:            auth,
		Tips:            tips,
		Community:       community,
		Hub:             wsHub,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("[MINEDICAS] WebSocket: ws://<domain>/ws")
	log.Printf("[MINEDICAS] Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("[MINEDICAS] Failed to start: %v", err)
	}
}
