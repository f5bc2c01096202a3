package models

import "time"

type TipCategory string

const (
	CategorySobrevivencia TipCategory = "Sobrevivência"
	CategoryConstrucao    TipCategory = "Construção"
	CategoryRedstone      TipCategory = "Redstone"
	CategoryExploracao    TipCategory = "Exploração"
)

// TipCategories lista as categorias aceitas, na ordem exibida no painel.
var TipCategories = []TipCategory{
	CategorySobrevivencia,
	CategoryConstrucao,
	CategoryRedstone,
	CategoryExploracao,
}

func (c TipCategory) Valid() bool {
	for _, known := range TipCategories {
		if c == known {
			return true
		}
	}
	return false
}

type TipStatus string

const (
	StatusRascunho  TipStatus = "Rascunho"
	StatusPublicado TipStatus = "Publicado"
)

func (s TipStatus) Valid() bool {
	return s == StatusRascunho || s == StatusPublicado
}

type Tip struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    TipCategory `json:"category"`
	ContentBody string      `json:"content_body"`
	Status      TipStatus   `json:"status"`
	AuthorID    string      `json:"author_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Derivados do conteúdo na leitura, nunca armazenados.
	ContentHTML string `json:"content_html,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

func (t Tip) Published() bool {
	return t.Status == StatusPublicado
}

type CriarTipRequest struct {
	Title       string      `json:"title" validate:"required,min=5,max=100"`
	Category    TipCategory `json:"category" validate:"required,tipcategory"`
	ContentBody string      `json:"content_body" validate:"required,min=50"`
	Status      TipStatus   `json:"status" validate:"required,tipstatus"`
}

// AtualizarTipRequest carrega apenas os campos enviados; nil significa "não alterar".
type AtualizarTipRequest struct {
	Title       *string      `json:"title" validate:"omitempty,min=5,max=100"`
	Category    *TipCategory `json:"category" validate:"omitempty,tipcategory"`
	ContentBody *string      `json:"content_body" validate:"omitempty,min=50"`
	Status      *TipStatus   `json:"status" validate:"omitempty,tipstatus"`
}

// Apply copia os campos presentes sobre t.
func (r AtualizarTipRequest) Apply(t *Tip) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Category != nil {
		t.Category = *r.Category
	}
	if r.ContentBody != nil {
		t.ContentBody = *r.ContentBody
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
}
