package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"minedicas/pkg/models"
	"minedicas/pkg/repository"
	"minedicas/pkg/validation"
)

const (
	msgPostNotFound    = "Post not found"
	msgCommentNotFound = "Comment not found"
)

// CaptchaVerifier confere o token anti-robô enviado junto com posts e comentários.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type CommunityService interface {
	ListPosts() []models.PostSummary
	GetPost(id string) (models.PostDetail, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest, remoteIP string) (models.Post, error)
	CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest, remoteIP string) (models.Comment, error)
	DeletePost(id string) error
	DeleteComment(id string) error
}

type communityService struct {
	posts    repository.PostsRepository
	comments repository.CommentsRepository
	captcha  CaptchaVerifier
	events   Publisher

	// cascade impede que um comentário seja gravado entre a remoção do post
	// e a limpeza dos comentários dele.
	cascade sync.RWMutex
}

func NewCommunityService(posts repository.PostsRepository, comments repository.CommentsRepository, captcha CaptchaVerifier, events Publisher) CommunityService {
	return &communityService{
		posts:    posts,
		comments: comments,
		captcha:  captcha,
		events:   publisherOrNoop(events),
	}
}

func (s *communityService) ListPosts() []models.PostSummary {
	posts := s.posts.List()
	out := make([]models.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = models.PostSummary{Post: p, CommentsCount: s.comments.CountByPost(p.ID)}
	}
	return out
}

func (s *communityService) GetPost(id string) (models.PostDetail, error) {
	post, err := s.posts.Get(id)
	if err != nil {
		return models.PostDetail{}, translateNotFound(err, msgPostNotFound)
	}
	return models.PostDetail{Post: post, Comments: s.comments.ListByPost(id)}, nil
}

func (s *communityService) CreatePost(ctx context.Context, req models.CreatePostRequest, remoteIP string) (models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return models.Post{}, fromValidation(err, MsgInvalidData)
	}

	if err := s.checkCaptcha(ctx, req.CaptchaResponse, remoteIP); err != nil {
		return models.Post{}, err
	}

	post := s.posts.Create(models.Post{
		Nickname: models.NicknameOrDefault(req.Nickname),
		Title:    req.PostTitle,
		Body:     req.PostBody,
	})
	s.events.Publish(EventPostCreated, post)
	return post, nil
}

// CreateComment verifica o post antes de validar, então um post inexistente
// sempre resulta em NOT_FOUND.
func (s *communityService) CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest, remoteIP string) (models.Comment, error) {
	if !s.posts.Exists(postID) {
		return models.Comment{}, ErrNotFound(msgPostNotFound)
	}

	if err := validation.Struct(req); err != nil {
		return models.Comment{}, fromValidation(err, MsgInvalidData)
	}

	if err := s.checkCaptcha(ctx, req.CaptchaResponse, remoteIP); err != nil {
		return models.Comment{}, err
	}

	s.cascade.RLock()
	if !s.posts.Exists(postID) {
		s.cascade.RUnlock()
		return models.Comment{}, ErrNotFound(msgPostNotFound)
	}
	comment := s.comments.Create(models.Comment{
		PostID:   postID,
		Nickname: models.NicknameOrDefault(req.Nickname),
		Body:     req.CommentBody,
	})
	s.cascade.RUnlock()

	s.events.Publish(EventCommentCreated, comment)
	return comment, nil
}

func (s *communityService) DeletePost(id string) error {
	s.cascade.Lock()
	if !s.posts.Delete(id) {
		s.cascade.Unlock()
		return ErrNotFound(msgPostNotFound)
	}
	removed := s.comments.DeleteByPost(id)
	s.cascade.Unlock()

	log.Printf("[COMMUNITY] Post %s removido com %d comentários", id, removed)
	s.events.Publish(EventPostDeleted, map[string]string{"id": id})
	return nil
}

func (s *communityService) DeleteComment(id string) error {
	if !s.comments.Delete(id) {
		return ErrNotFound(msgCommentNotFound)
	}
	s.events.Publish(EventCommentDeleted, map[string]string{"id": id})
	return nil
}

func (s *communityService) checkCaptcha(ctx context.Context, token, remoteIP string) error {
	ok, err := s.captcha.Verify(ctx, token, remoteIP)
	if err != nil {
		return fmt.Errorf("verificar captcha: %w", err)
	}
	if !ok {
		return ErrCaptcha()
	}
	return nil
}
