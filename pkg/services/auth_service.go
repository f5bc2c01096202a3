package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"minedicas/pkg/models"
	"minedicas/pkg/repository"
	"minedicas/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(req models.LoginRequest) (models.LoginResponse, error)
	VerifyToken(tokenStr string) (models.Principal, error)
}

type AuthConfig struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
	Now        func() time.Time
}

type adminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	repo   repository.AdminRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	// dummyHash é comparado quando o usuário não existe, para que o tempo
	// de resposta não revele quais nomes estão cadastrados.
	dummyHash []byte
}

func NewAuthService(repo repository.AdminRepository, cfg AuthConfig) (AuthService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("segredo JWT vazio")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 8 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("senha-que-nunca-confere"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash de referência: %w", err)
	}

	return &authService{
		repo:      repo,
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TTL,
		now:       cfg.Now,
		dummyHash: dummy,
	}, nil
}

func (s *authService) Login(req models.LoginRequest) (models.LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.LoginResponse{}, fromValidation(err, MsgLoginFormat)
	}

	admin, err := s.repo.FindByUsername(req.Username)
	if err != nil {
		bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return models.LoginResponse{}, errLoginFailed()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return models.LoginResponse{}, errLoginFailed()
	}

	token, err := s.generateAccessToken(admin)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("assinar token: %w", err)
	}

	log.Printf("[AUTH] Login do admin %s", admin.Username)
	return models.LoginResponse{Token: token}, nil
}

// VerifyToken aceita apenas HS256 assinado com o segredo atual e ainda dentro da validade.
func (s *authService) VerifyToken(tokenStr string) (models.Principal, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return models.Principal{}, ErrUnauthorized(MsgInvalidToken)
	}
	if claims.Subject == "" || claims.Role != models.RoleAdmin {
		return models.Principal{}, ErrUnauthorized(MsgInvalidToken)
	}

	return models.Principal{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *authService) generateAccessToken(admin models.Admin) (string, error) {
	now := s.now()
	claims := adminClaims{
		Username: admin.Username,
		Role:     models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
