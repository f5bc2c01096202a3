package repository

import (
	"sync"
	"testing"
	"time"

	"minedicas/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func sampleTip(title string, cat models.TipCategory) models.Tip {
	return models.Tip{
		Title:       title,
		Category:    cat,
		ContentBody: "Conteúdo longo o bastante para passar na validação de dicas do site.",
		Status:      models.StatusPublicado,
		AuthorID:    "admin",
	}
}

func TestTipsRepository_CriarAtribuiIDETimestamps(t *testing.T) {
	clock := newFakeClock()
	repo := NewTipsRepository(clock.Now)

	tip := repo.Criar(sampleTip("Fazenda de ferro", models.CategoryRedstone))

	_, err := uuid.Parse(tip.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), tip.CreatedAt)
	assert.Equal(t, tip.CreatedAt, tip.UpdatedAt)

	got, err := repo.BuscarPorID(tip.ID)
	require.NoError(t, err)
	assert.Equal(t, tip, got)
}

func TestTipsRepository_AtualizarMesclaERenovaUpdatedAt(t *testing.T) {
	clock := newFakeClock()
	repo := NewTipsRepository(clock.Now)
	tip := repo.Criar(sampleTip("Fazenda de ferro", models.CategoryRedstone))

	clock.Advance(time.Minute)
	status := models.StatusRascunho
	updated, err := repo.Atualizar(tip.ID, models.AtualizarTipRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRascunho, updated.Status)
	assert.Equal(t, tip.Title, updated.Title)
	assert.Equal(t, tip.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(tip.UpdatedAt))

	clock.Advance(time.Minute)
	again, err := repo.Atualizar(tip.ID, models.AtualizarTipRequest{})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt), "empty update still touches updated_at")
}

func TestTipsRepository_AtualizarInexistente(t *testing.T) {
	repo := NewTipsRepository(nil)
	_, err := repo.Atualizar(uuid.NewString(), models.AtualizarTipRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTipsRepository_ListarFiltraCategoria(t *testing.T) {
	clock := newFakeClock()
	repo := NewTipsRepository(clock.Now)

	repo.Criar(sampleTip("Primeira dica", models.CategoryRedstone))
	clock.Advance(time.Second)
	repo.Criar(sampleTip("Segunda dica", models.CategoryExploracao))
	clock.Advance(time.Second)
	repo.Criar(sampleTip("Terceira dica", models.CategoryRedstone))

	all := repo.Listar("")
	require.Len(t, all, 3)
	assert.Equal(t, "Terceira dica", all[0].Title)

	redstone := repo.Listar(models.CategoryRedstone)
	require.Len(t, redstone, 2)
	for _, tip := range redstone {
		assert.Equal(t, models.CategoryRedstone, tip.Category)
	}

	assert.Empty(t, repo.Listar(models.CategoryConstrucao))
}

func TestTipsRepository_DeletarDuasVezes(t *testing.T) {
	repo := NewTipsRepository(nil)
	tip := repo.Criar(sampleTip("Fazenda de ferro", models.CategoryRedstone))

	assert.True(t, repo.Deletar(tip.ID))
	assert.False(t, repo.Deletar(tip.ID))

	_, err := repo.BuscarPorID(tip.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostsRepository_ListNewestFirstWithTies(t *testing.T) {
	clock := newFakeClock()
	repo := NewPostsRepository(clock.Now)

	a := repo.Create(models.Post{Title: "Post A", Body: "corpo do post"})
	b := repo.Create(models.Post{Title: "Post B", Body: "corpo do post"})
	clock.Advance(time.Second)
	c := repo.Create(models.Post{Title: "Post C", Body: "corpo do post"})

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestPostsRepository_GetAndDelete(t *testing.T) {
	repo := NewPostsRepository(nil)
	p := repo.Create(models.Post{Title: "Meu post", Body: "corpo do post"})

	assert.True(t, repo.Exists(p.ID))
	got, err := repo.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	assert.True(t, repo.Delete(p.ID))
	assert.False(t, repo.Delete(p.ID))
	assert.False(t, repo.Exists(p.ID))
}

func TestCommentsRepository_IndexByPost(t *testing.T) {
	clock := newFakeClock()
	repo := NewCommentsRepository(clock.Now)

	c1 := repo.Create(models.Comment{PostID: "p1", Body: "primeiro"})
	clock.Advance(time.Second)
	c2 := repo.Create(models.Comment{PostID: "p1", Body: "segundo"})
	other := repo.Create(models.Comment{PostID: "p2", Body: "outro post"})

	assert.Equal(t, 2, repo.CountByPost("p1"))
	assert.Equal(t, 1, repo.CountByPost("p2"))
	assert.Equal(t, 0, repo.CountByPost("p3"))

	list := repo.ListByPost("p1")
	require.Len(t, list, 2)
	assert.Equal(t, c2.ID, list[0].ID)
	assert.Equal(t, c1.ID, list[1].ID)

	assert.NotNil(t, repo.ListByPost("p3"))
	assert.Empty(t, repo.ListByPost("p3"))

	assert.True(t, repo.Delete(c1.ID))
	assert.False(t, repo.Delete(c1.ID))
	assert.Equal(t, 1, repo.CountByPost("p1"))

	assert.Equal(t, 1, repo.DeleteByPost("p1"))
	assert.Equal(t, 0, repo.CountByPost("p1"))
	assert.Equal(t, 0, repo.DeleteByPost("p1"))

	require.Len(t, repo.ListByPost("p2"), 1)
	assert.Equal(t, other.ID, repo.ListByPost("p2")[0].ID)
}

func TestCommentsRepository_ConcurrentCreates(t *testing.T) {
	repo := NewCommentsRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Create(models.Comment{PostID: "p1", Body: "comentário"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.CountByPost("p1"))
	assert.Len(t, repo.ListByPost("p1"), 50)
}

func TestAdminRepository_SeedsHashedPassword(t *testing.T) {
	repo, err := NewAdminRepository("admin", "admin123", bcrypt.MinCost)
	require.NoError(t, err)

	admin, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	_, err = repo.FindByUsername("root")
	assert.ErrorIs(t, err, ErrNotFound)
}
