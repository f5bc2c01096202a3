package services

import (
	"errors"

	"minedicas/pkg/models"
	"minedicas/pkg/repository"
	"minedicas/pkg/validation"
)

const msgTipNotFound = "Tip not found"

// Visibility decide se rascunhos aparecem na leitura.
type Visibility int

const (
	VisibilityPublished Visibility = iota
	VisibilityAll
)

type TipsService interface {
	Listar(categoria string, vis Visibility) ([]models.Tip, error)
	BuscarPorID(id string, vis Visibility) (models.Tip, error)
	Criar(req models.CriarTipRequest, authorID string) (models.Tip, error)
	Atualizar(id string, req models.AtualizarTipRequest) (models.Tip, error)
	Deletar(id string) error
}

type tipsService struct {
	repo   repository.TipsRepository
	events Publisher
}

func NewTipsService(repo repository.TipsRepository, events Publisher) TipsService {
	return &tipsService{repo: repo, events: publisherOrNoop(events)}
}

// Listar filtra pela categoria exata; valor desconhecido resulta em lista vazia.
func (s *tipsService) Listar(categoria string, vis Visibility) ([]models.Tip, error) {
	tips := s.repo.Listar(models.TipCategory(categoria))
	if vis == VisibilityPublished {
		published := make([]models.Tip, 0, len(tips))
		for _, t := range tips {
			if t.Published() {
				published = append(published, t)
			}
		}
		tips = published
	}
	return withRenderingAll(tips), nil
}

// BuscarPorID trata rascunho como inexistente na leitura pública.
func (s *tipsService) BuscarPorID(id string, vis Visibility) (models.Tip, error) {
	tip, err := s.repo.BuscarPorID(id)
	if err != nil {
		return models.Tip{}, translateNotFound(err, msgTipNotFound)
	}
	if vis == VisibilityPublished && !tip.Published() {
		return models.Tip{}, ErrNotFound(msgTipNotFound)
	}
	return withRendering(tip), nil
}

func (s *tipsService) Criar(req models.CriarTipRequest, authorID string) (models.Tip, error) {
	if err := validation.Struct(req); err != nil {
		return models.Tip{}, fromValidation(err, MsgInvalidData)
	}

	tip := s.repo.Criar(models.Tip{
		Title:       req.Title,
		Category:    req.Category,
		ContentBody: req.ContentBody,
		Status:      req.Status,
		AuthorID:    authorID,
	})

	tip = withRendering(tip)
	if tip.Published() {
		s.events.Publish(EventTipPublished, tip)
	}
	return tip, nil
}

func (s *tipsService) Atualizar(id string, req models.AtualizarTipRequest) (models.Tip, error) {
	if err := validation.UUID(id); err != nil {
		return models.Tip{}, fromValidation(err, "Invalid ID")
	}
	if err := validation.Struct(req); err != nil {
		return models.Tip{}, fromValidation(err, MsgInvalidData)
	}

	before, err := s.repo.BuscarPorID(id)
	if err != nil {
		return models.Tip{}, translateNotFound(err, msgTipNotFound)
	}

	tip, err := s.repo.Atualizar(id, req)
	if err != nil {
		return models.Tip{}, translateNotFound(err, msgTipNotFound)
	}

	tip = withRendering(tip)
	if tip.Published() && !before.Published() {
		s.events.Publish(EventTipPublished, tip)
	}
	return tip, nil
}

func (s *tipsService) Deletar(id string) error {
	if !s.repo.Deletar(id) {
		return ErrNotFound(msgTipNotFound)
	}
	s.events.Publish(EventTipDeleted, map[string]string{"id": id})
	return nil
}

func translateNotFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound(message)
	}
	return err
}
