package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/domain/feed"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

const channelPrefix = "feed:"

func Channel(table string) string {
	return channelPrefix + table
}

// RedisFeed publishes row events to one Pub/Sub channel per table.
type RedisFeed struct {
	rdb    *redis.Client
	logger logger.Logger
	buffer int
}

func NewRedisFeed(rdb *redis.Client, log logger.Logger) *RedisFeed {
	return &RedisFeed{rdb: rdb, logger: log, buffer: 64}
}

var (
	_ feed.Publisher  = (*RedisFeed)(nil)
	_ feed.Subscriber = (*RedisFeed)(nil)
)

func (f *RedisFeed) Publish(ctx context.Context, e feed.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := f.rdb.Publish(ctx, Channel(e.Table), payload).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

// Subscribe blocks until Redis confirms the subscription, so events
// published after it returns are delivered.
func (f *RedisFeed) Subscribe(ctx context.Context, table string) (feed.Subscription, error) {
	ps := f.rdb.Subscribe(ctx, Channel(table))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", table, err)
	}

	sub := &redisSubscription{
		ps:     ps,
		events: make(chan feed.Event, f.buffer),
		done:   make(chan struct{}),
		logger: f.logger.With(zap.String("table", table)),
	}
	go sub.run()
	return sub, nil
}

type redisSubscription struct {
	ps     *redis.PubSub
	events chan feed.Event
	done   chan struct{}
	once   sync.Once
	logger logger.Logger
}

func (s *redisSubscription) Events() <-chan feed.Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}

func (s *redisSubscription) run() {
	defer close(s.events)
	ch := s.ps.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var e feed.Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				s.logger.Warn("Dropping malformed feed event", zap.Error(err))
				continue
			}
			select {
			case s.events <- e:
			case <-s.done:
				return
			}
		}
	}
}
