package livefeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/campus-connect/internal/domain/feed"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/mocks"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type delivery struct {
	event   string
	payload any
}

type harness struct {
	campus   *mocks.BroadcastRepo
	direct   *mocks.DirectRepo
	profiles *mocks.ProfileRepo
	feed     *mocks.Feed
	uc       *LiveFeedUseCase
	out      chan delivery
}

func newHarness() *harness {
	h := &harness{
		campus:   new(mocks.BroadcastRepo),
		direct:   new(mocks.DirectRepo),
		profiles: new(mocks.ProfileRepo),
		feed:     mocks.NewFeed(),
		out:      make(chan delivery, 16),
	}
	h.uc = NewLiveFeedUseCase(h.campus, h.direct, h.profiles, h.feed, logger.NewNopLogger())
	return h
}

func (h *harness) sink(event string, payload any) error {
	h.out <- delivery{event: event, payload: payload}
	return nil
}

func (h *harness) next(t *testing.T) delivery {
	t.Helper()
	select {
	case d := <-h.out:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	return delivery{}
}

func (h *harness) none(t *testing.T) {
	t.Helper()
	select {
	case d := <-h.out:
		t.Fatalf("unexpected delivery %q", d.event)
	case <-time.After(100 * time.Millisecond):
	}
}

func publish(t *testing.T, f *mocks.Feed, table string, record any) {
	t.Helper()
	e, err := feed.NewInsertEvent(table, record)
	require.NoError(t, err)
	require.NoError(t, f.Publish(context.Background(), e))
}

func TestOpenDirect_MergesOnlyThePair(t *testing.T) {
	h := newHarness()
	viewer, peer, stranger := uuid.New(), uuid.New(), uuid.New()

	existing, _ := message.NewDirectText(peer, viewer, "earlier")
	h.direct.On("ListBetween", mock.Anything, viewer, peer).Return([]*message.DirectMessage{existing}, nil)
	h.profiles.On("FindNames", mock.Anything, []uuid.UUID{peer}).Return(map[uuid.UUID]string{peer: "Ben"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.uc.ExecuteOpenDirect(ctx, viewer, peer, h.sink) }()

	snap := h.next(t)
	require.Equal(t, EventSnapshot, snap.event)
	assert.Len(t, snap.payload.([]*message.DirectMessage), 1)

	other, _ := message.NewDirectText(stranger, viewer, "not this thread")
	publish(t, h.feed, feed.TableDirectMessages, other)
	h.none(t)

	publish(t, h.feed, feed.TableDirectMessages, existing)
	h.none(t)

	incoming, _ := message.NewDirectText(peer, viewer, "new one")
	publish(t, h.feed, feed.TableDirectMessages, incoming)
	publish(t, h.feed, feed.TableDirectMessages, incoming)

	got := h.next(t)
	require.Equal(t, EventMessage, got.event)
	m := got.payload.(*message.DirectMessage)
	assert.Equal(t, incoming.ID, m.ID)
	assert.Equal(t, "Ben", m.SenderName)
	h.none(t)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, h.feed.Subscribers(feed.TableDirectMessages))
}

func TestOpenCampus_NameLookupFailureStillMerges(t *testing.T) {
	h := newHarness()
	viewer, sender := uuid.New(), uuid.New()
	h.campus.On("ListAll", mock.Anything).Return([]*message.BroadcastMessage{}, nil)
	h.profiles.On("FindNames", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.uc.ExecuteOpenCampus(ctx, viewer, h.sink) }()

	require.Equal(t, EventSnapshot, h.next(t).event)

	m, _ := message.NewBroadcast(sender, "hello all")
	publish(t, h.feed, feed.TableCampusMessages, m)

	got := h.next(t)
	require.Equal(t, EventMessage, got.event)
	assert.Empty(t, got.payload.(*message.BroadcastMessage).SenderName)
}

func TestOpen_BulkReadFailureClosesSubscription(t *testing.T) {
	h := newHarness()
	h.campus.On("ListAll", mock.Anything).Return(nil, errors.New("db down"))

	err := h.uc.ExecuteOpenCampus(context.Background(), uuid.New(), h.sink)
	assert.Error(t, err)
	assert.Equal(t, 0, h.feed.Subscribers(feed.TableCampusMessages))
	h.none(t)
}

func TestOpen_SubscribeFailure(t *testing.T) {
	h := newHarness()
	h.feed.SubErr = errors.New("redis down")

	err := h.uc.ExecuteOpenCampus(context.Background(), uuid.New(), h.sink)
	assert.Error(t, err)
	h.campus.AssertNotCalled(t, "ListAll", mock.Anything)
}
