package repository

import (
	"sync"
	"time"

	"minedicas/pkg/models"
)

type TipsRepository interface {
	Listar(categoria models.TipCategory) []models.Tip
	BuscarPorID(id string) (models.Tip, error)
	Criar(t models.Tip) models.Tip
	Atualizar(id string, req models.AtualizarTipRequest) (models.Tip, error)
	Deletar(id string) bool
}

type tipsRepository struct {
	mu    sync.RWMutex
	tips  *table[models.Tip]
	clock Clock
}

func NewTipsRepository(clock Clock) TipsRepository {
	return &tipsRepository{
		tips:  newTable(func(t models.Tip) time.Time { return t.CreatedAt }),
		clock: clock,
	}
}

// Listar filtra por categoria exata; categoria vazia devolve tudo.
func (r *tipsRepository) Listar(categoria models.TipCategory) []models.Tip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if categoria == "" {
		return r.tips.list(nil)
	}
	return r.tips.list(func(t models.Tip) bool { return t.Category == categoria })
}

func (r *tipsRepository) BuscarPorID(id string) (models.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tip, ok := r.tips.get(id)
	if !ok {
		return models.Tip{}, ErrNotFound
	}
	return tip, nil
}

// Criar atribui id, created_at e updated_at.
func (r *tipsRepository) Criar(t models.Tip) models.Tip {
	now := r.clock.now()
	t.ID = newID()
	t.CreatedAt = now
	t.UpdatedAt = now

	r.mu.Lock()
	r.tips.insert(t.ID, t)
	r.mu.Unlock()
	return t
}

// Atualizar mescla os campos enviados e sempre renova updated_at.
func (r *tipsRepository) Atualizar(id string, req models.AtualizarTipRequest) (models.Tip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tip, ok := r.tips.update(id, func(t *models.Tip) {
		req.Apply(t)
		t.UpdatedAt = r.clock.now()
	})
	if !ok {
		return models.Tip{}, ErrNotFound
	}
	return tip, nil
}

func (r *tipsRepository) Deletar(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tips.remove(id)
}
