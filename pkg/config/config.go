package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-key-change-in-production"

// Config reúne tudo que o servidor lê do ambiente na inicialização.
type Config struct {
	Port string

	JWTSecret    string
	JWTExpiresIn time.Duration

	AdminUsername string
	AdminPassword string
	BcryptRounds  int

	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSOrigins string

	CaptchaSecret    string
	CaptchaVerifyURL string
	CaptchaFailToken string
}

// Load lê as variáveis de ambiente e aplica os padrões de desenvolvimento.
func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiresIn:     getDuration("JWT_EXPIRES_IN", 8*time.Hour),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		BcryptRounds:     getInt("BCRYPT_ROUNDS", 10),
		RateLimitMax:     getInt("RATE_LIMIT_MAX", 5),
		RateLimitWindow:  getDuration("RATE_LIMIT_WINDOW", time.Minute),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:5173"),
		CaptchaSecret:    getEnv("CAPTCHA_SECRET", ""),
		CaptchaVerifyURL: getEnv("CAPTCHA_VERIFY_URL", ""),
		CaptchaFailToken: getEnv("CAPTCHA_FAIL_TOKEN", "fail"),
	}

	if cfg.JWTSecret == devJWTSecret {
		log.Println("[CONFIG] Aviso: JWT_SECRET não definida, usando chave de desenvolvimento.")
	}

	return cfg
}

// RemoteCaptcha diz se a verificação de captcha deve ir para o serviço externo.
func (c Config) RemoteCaptcha() bool {
	return c.CaptchaSecret != "" && c.CaptchaVerifyURL != ""
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("[CONFIG] Valor inválido para %s=%q, usando %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("[CONFIG] Valor inválido para %s=%q, usando %s", key, raw, fallback)
		return fallback
	}
	return d
}
