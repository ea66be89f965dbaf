package http

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

// sseStream writes Server-Sent Events. Headers go out with the first event,
// so a failure before that can still be answered with a JSON error.
type sseStream struct {
	c       *gin.Context
	mu      sync.Mutex
	started bool
}

func newSSEStream(c *gin.Context) *sseStream {
	return &sseStream{c: c}
}

func (s *sseStream) Send(event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.c.Request.Context().Err(); err != nil {
		return err
	}
	s.start()
	s.c.SSEvent(event, payload)
	s.c.Writer.Flush()
	return nil
}

func (s *sseStream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *sseStream) start() {
	if s.started {
		return
	}
	h := s.c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.c.Status(http.StatusOK)
	s.started = true
}

// keepAlive writes a comment line periodically so proxies keep the
// connection open. It returns when ctx ends.
func (s *sseStream) keepAlive(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.started && ctx.Err() == nil {
				_, _ = io.WriteString(s.c.Writer, ": ping\n\n")
				s.c.Writer.Flush()
			}
			s.mu.Unlock()
		}
	}
}

// serve runs open against the stream until it returns, keeping the
// connection alive meanwhile.
func (s *sseStream) serve(open func(ctx context.Context, send func(string, any) error) error) error {
	ctx, cancel := context.WithCancel(s.c.Request.Context())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.keepAlive(ctx, keepAliveInterval)
	}()

	err := open(ctx, s.Send)
	cancel()
	wg.Wait()
	return err
}
