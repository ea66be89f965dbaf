package livefeed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/domain/feed"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

var tracer = otel.Tracer("livefeed_usecase")

const (
	EventSnapshot = "snapshot"
	EventMessage  = "message"
)

// ErrFeedClosed is returned when the change feed ends before the caller does.
var ErrFeedClosed = errors.New("change feed closed")

// Sink receives the initial snapshot and then every merged message.
type Sink func(event string, payload any) error

type LiveFeedUseCase struct {
	campusRepo  message.BroadcastRepository
	directRepo  message.DirectRepository
	profileRepo profile.Repository
	subscriber  feed.Subscriber
	logger      logger.Logger
}

func NewLiveFeedUseCase(
	campus message.BroadcastRepository,
	direct message.DirectRepository,
	profiles profile.Repository,
	subscriber feed.Subscriber,
	log logger.Logger,
) *LiveFeedUseCase {
	return &LiveFeedUseCase{
		campusRepo:  campus,
		directRepo:  direct,
		profileRepo: profiles,
		subscriber:  subscriber,
		logger:      log,
	}
}

// ExecuteOpenCampus streams the campus chat until ctx ends.
func (uc *LiveFeedUseCase) ExecuteOpenCampus(ctx context.Context, viewerID uuid.UUID, sink Sink) error {
	ctx, span := tracer.Start(ctx, "OpenCampusFeed")
	defer span.End()

	thread := message.NewThread[*message.BroadcastMessage](nil)
	return run(ctx, uc, feed.TableCampusMessages, thread,
		uc.campusRepo.ListAll,
		func(m *message.BroadcastMessage) uuid.UUID { return m.UserID },
		func(m *message.BroadcastMessage, name string) { m.SenderName = name },
		sink,
	)
}

// ExecuteOpenDirect streams the viewer<->peer thread until ctx ends. The
// feed is table-wide, so events of other pairs are dropped.
func (uc *LiveFeedUseCase) ExecuteOpenDirect(ctx context.Context, viewerID, peerID uuid.UUID, sink Sink) error {
	ctx, span := tracer.Start(ctx, "OpenDirectFeed")
	defer span.End()
	span.SetAttributes(attribute.String("peer_id", peerID.String()))

	thread := message.NewDirectThread(viewerID, peerID)
	return run(ctx, uc, feed.TableDirectMessages, thread,
		func(ctx context.Context) ([]*message.DirectMessage, error) {
			return uc.directRepo.ListBetween(ctx, viewerID, peerID)
		},
		func(m *message.DirectMessage) uuid.UUID { return m.SenderID },
		func(m *message.DirectMessage, name string) { m.SenderName = name },
		sink,
	)
}

// run subscribes before the bulk read so no insert committed in between is
// missed; the thread drops whatever the snapshot already holds.
func run[T message.Entry](
	ctx context.Context,
	uc *LiveFeedUseCase,
	table string,
	thread *message.Thread[T],
	load func(context.Context) ([]T, error),
	senderOf func(T) uuid.UUID,
	setName func(T, string),
	sink Sink,
) error {
	sub, err := uc.subscriber.Subscribe(ctx, table)
	if err != nil {
		return apperror.NewInternal("failed to open change feed", err)
	}
	defer func() {
		if err := sub.Close(); err != nil {
			uc.logger.Warn("Failed to close change feed", zap.String("table", table), zap.Error(err))
		}
	}()

	items, err := load(ctx)
	if err != nil {
		return err
	}
	thread.Load(items)
	if err := sink(EventSnapshot, thread.Items()); err != nil {
		return err
	}

	names := make(map[uuid.UUID]string)
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-sub.Events():
			if !ok {
				return ErrFeedClosed
			}
			if e.Type != feed.EventInsert {
				continue
			}

			var item T
			if err := e.Decode(&item); err != nil {
				uc.logger.Warn("Dropping undecodable feed record", zap.String("table", table), zap.Error(err))
				continue
			}
			if !thread.Accepts(item) || thread.Contains(item.MessageID()) {
				continue
			}

			sender := senderOf(item)
			name, cached := names[sender]
			if !cached {
				found, err := uc.profileRepo.FindNames(ctx, []uuid.UUID{sender})
				if err != nil {
					uc.logger.Warn("Failed to resolve sender name", zap.String("user_id", sender.String()), zap.Error(err))
				} else {
					name = found[sender]
					names[sender] = name
				}
			}
			setName(item, name)

			if thread.Merge(item) {
				if err := sink(EventMessage, item); err != nil {
					return err
				}
			}
		}
	}
}
