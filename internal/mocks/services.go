package mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/domain/feed"
)

type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (*service.UploadResult, error) {
	args := m.Called(ctx, file, folder, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *Uploader) Delete(ctx context.Context, publicID string, resourceType string) error {
	return m.Called(ctx, publicID, resourceType).Error(0)
}

func (m *Uploader) ImageVariantURL(publicID string, transformation string) (string, error) {
	args := m.Called(publicID, transformation)
	return args.String(0), args.Error(1)
}

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// EventPublisher records message events instead of sending them.
type EventPublisher struct {
	mu       sync.Mutex
	Payloads []service.MessageEventPayload
	Err      error
}

func (p *EventPublisher) PublishMessageEvent(_ context.Context, payload service.MessageEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Payloads = append(p.Payloads, payload)
	return p.Err
}

func (p *EventPublisher) Published() []service.MessageEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]service.MessageEventPayload, len(p.Payloads))
	copy(out, p.Payloads)
	return out
}

// Feed is an in-memory change feed. Published events fan out to every open
// subscription on the same table.
type Feed struct {
	mu        sync.Mutex
	subs      map[string][]*feedSub
	Published []feed.Event
	PubErr    error
	SubErr    error
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string][]*feedSub)}
}

func (f *Feed) Publish(_ context.Context, e feed.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PubErr != nil {
		return f.PubErr
	}
	f.Published = append(f.Published, e)
	for _, s := range f.subs[e.Table] {
		s.deliver(e)
	}
	return nil
}

func (f *Feed) Subscribe(_ context.Context, table string) (feed.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SubErr != nil {
		return nil, f.SubErr
	}
	s := &feedSub{events: make(chan feed.Event, 16), parent: f, table: table}
	f.subs[table] = append(f.subs[table], s)
	return s, nil
}

// Subscribers counts open subscriptions on table.
func (f *Feed) Subscribers(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[table])
}

func (f *Feed) remove(s *feedSub) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.subs[s.table]
	for i, other := range list {
		if other == s {
			f.subs[s.table] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

type feedSub struct {
	mu     sync.Mutex
	events chan feed.Event
	closed bool
	parent *Feed
	table  string
}

func (s *feedSub) deliver(e feed.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.events <- e
	}
}

func (s *feedSub) Events() <-chan feed.Event { return s.events }

func (s *feedSub) Close() error {
	s.parent.remove(s)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}
