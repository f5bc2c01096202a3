package repository

import (
	"sync"
	"time"

	"minedicas/pkg/models"
)

type PostsRepository interface {
	List() []models.Post
	Get(id string) (models.Post, error)
	Exists(id string) bool
	Create(p models.Post) models.Post
	Delete(id string) bool
}

type CommentsRepository interface {
	ListByPost(postID string) []models.Comment
	CountByPost(postID string) int
	Create(c models.Comment) models.Comment
	Delete(id string) bool
	DeleteByPost(postID string) int
}

type postsRepository struct {
	mu    sync.RWMutex
	posts *table[models.Post]
	clock Clock
}

func NewPostsRepository(clock Clock) PostsRepository {
	return &postsRepository{
		posts: newTable(func(p models.Post) time.Time { return p.CreatedAt }),
		clock: clock,
	}
}

func (r *postsRepository) List() []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.posts.list(nil)
}

func (r *postsRepository) Get(id string) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts.get(id)
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (r *postsRepository) Exists(id string) bool {
	_, err := r.Get(id)
	return err == nil
}

func (r *postsRepository) Create(p models.Post) models.Post {
	p.ID = newID()
	p.CreatedAt = r.clock.now()

	r.mu.Lock()
	r.posts.insert(p.ID, p)
	r.mu.Unlock()
	return p
}

func (r *postsRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts.remove(id)
}

// commentsRepository indexa comentários por post para que a remoção em cascata
// não precise varrer a coleção inteira.
type commentsRepository struct {
	mu       sync.RWMutex
	comments *table[models.Comment]
	byPost   map[string]map[string]struct{}
	clock    Clock
}

func NewCommentsRepository(clock Clock) CommentsRepository {
	return &commentsRepository{
		comments: newTable(func(c models.Comment) time.Time { return c.CreatedAt }),
		byPost:   make(map[string]map[string]struct{}),
		clock:    clock,
	}
}

func (r *commentsRepository) ListByPost(postID string) []models.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.comments.pick(r.byPost[postID])
}

func (r *commentsRepository) CountByPost(postID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPost[postID])
}

func (r *commentsRepository) Create(c models.Comment) models.Comment {
	c.ID = newID()
	c.CreatedAt = r.clock.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments.insert(c.ID, c)
	ids, ok := r.byPost[c.PostID]
	if !ok {
		ids = make(map[string]struct{})
		r.byPost[c.PostID] = ids
	}
	ids[c.ID] = struct{}{}
	return c
}

func (r *commentsRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments.get(id)
	if !ok {
		return false
	}
	r.comments.remove(id)
	r.unindex(c.PostID, id)
	return true
}

// DeleteByPost remove todos os comentários do post e devolve quantos saíram.
func (r *commentsRepository) DeleteByPost(postID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byPost[postID]
	for id := range ids {
		r.comments.remove(id)
	}
	delete(r.byPost, postID)
	return len(ids)
}

func (r *commentsRepository) unindex(postID, commentID string) {
	ids := r.byPost[postID]
	delete(ids, commentID)
	if len(ids) == 0 {
		delete(r.byPost, postID)
	}
}
