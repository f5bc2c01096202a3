package repository

import (
	"fmt"
	"sync"

	"minedicas/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

type AdminRepository interface {
	FindByUsername(username string) (models.Admin, error)
}

type adminRepository struct {
	mu     sync.RWMutex
	admins map[string]models.Admin
}

// NewAdminRepository semeia o único administrador com a senha já em bcrypt.
func NewAdminRepository(username, password string, cost int) (AdminRepository, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash da senha do admin: %w", err)
	}

	admin := models.Admin{
		ID:           newID(),
		Username:     username,
		PasswordHash: string(hashed),
	}
	return &adminRepository{
		admins: map[string]models.Admin{admin.ID: admin},
	}, nil
}

func (r *adminRepository) FindByUsername(username string) (models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Admin{}, ErrNotFound
}
