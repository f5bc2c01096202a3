package services

const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
	EventTipPublished   = "tip.published"
	EventTipDeleted     = "tip.deleted"
)

// Publisher recebe os eventos de domínio depois que a mutação foi gravada.
type Publisher interface {
	Publish(action string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
