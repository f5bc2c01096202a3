package models

import "time"

// DefaultNickname é usado quando o visitante não informa apelido.
const DefaultNickname = "Anônimo"

type Post struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Nickname  string    `json:"nickname"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// PostSummary é o item da listagem pública do mural.
type PostSummary struct {
	Post
	CommentsCount int `json:"comments_count"`
}

// PostDetail é o post com todos os comentários, mais recentes primeiro.
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

type CreatePostRequest struct {
	Nickname        string `json:"nickname" validate:"max=30,nickname"`
	PostTitle       string `json:"post_title" validate:"required,min=5,max=150"`
	PostBody        string `json:"post_body" validate:"required,min=10,max=2000"`
	CaptchaResponse string `json:"captcha_response"`
}

type CreateCommentRequest struct {
	Nickname        string `json:"nickname" validate:"max=30,nickname"`
	CommentBody     string `json:"comment_body" validate:"required,min=5,max=1000"`
	CaptchaResponse string `json:"captcha_response"`
}

func NicknameOrDefault(nickname string) string {
	if nickname == "" {
		return DefaultNickname
	}
	return nickname
}
