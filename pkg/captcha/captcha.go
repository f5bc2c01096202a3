// Package captcha verifica os tokens anti-robô enviados pelo mural.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Mock aceita qualquer token não vazio diferente de FailToken.
type Mock struct {
	FailToken string
}

func NewMock(failToken string) Mock {
	return Mock{FailToken: failToken}
}

func (m Mock) Verify(_ context.Context, token, _ string) (bool, error) {
	if token == "" || token == m.FailToken {
		return false, nil
	}
	return true, nil
}

// SiteVerifier fala o protocolo siteverify do hCaptcha e do reCAPTCHA.
type SiteVerifier struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func NewSiteVerifier(url, secret string) *SiteVerifier {
	return &SiteVerifier{URL: url, Secret: secret, Timeout: 5 * time.Second}
}

// Verify devolve erro só em falha de transporte; recusa do provedor vira false.
func (v *SiteVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	timeout := v.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("secret", v.Secret)
	args.Set("response", token)
	if remoteIP != "" {
		args.Set("remoteip", remoteIP)
	}

	agent := fiber.Post(v.URL)
	agent.Form(args)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return false, fmt.Errorf("preparar requisição captcha: %w", err)
	}

	var out siteVerifyResponse
	code, _, errs := agent.Struct(&out)
	if len(errs) > 0 {
		return false, fmt.Errorf("captcha indisponível: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return false, fmt.Errorf("captcha respondeu status %d", code)
	}

	if !out.Success && len(out.ErrorCodes) > 0 {
		log.Printf("[CAPTCHA] Token recusado: %s", strings.Join(out.ErrorCodes, ","))
	}
	return out.Success, nil
}
