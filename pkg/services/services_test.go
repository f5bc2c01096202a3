package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"minedicas/pkg/models"
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

type recordedEvent struct {
	Action string
	Data   interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(action string, data interface{}) {
	p.mu.Lock()
	p.events = append(p.events, recordedEvent{action, data})
	p.mu.Unlock()
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

// fakeCaptcha conta as chamadas e rejeita "" e "fail".
type fakeCaptcha struct {
	mu    sync.Mutex
	calls int
	err   error
	hook  func()
}

func (f *fakeCaptcha) Verify(_ context.Context, token, _ string) (bool, error) {
	f.mu.Lock()
	f.calls++
	hook := f.hook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.err != nil {
		return false, f.err
	}
	return token != "" && token != "fail", nil
}

func (f *fakeCaptcha) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func validTipRequest() models.CriarTipRequest {
	return models.CriarTipRequest{
		Title:       "Como achar diamantes",
		Category:    models.CategoryExploracao,
		ContentBody: "Cave na camada -58 usando **galhos em espinha de peixe** e leve tochas de sobra.",
		Status:      models.StatusPublicado,
	}
}

func serviceCode(err error) string {
	if se, ok := AsServiceError(err); ok {
		return se.Code
	}
	return ""
}

var errTransport = errors.New("conexão recusada")

func longText(n int) string {
	return strings.Repeat("a", n)
}
