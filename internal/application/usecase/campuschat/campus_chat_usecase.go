package campuschat

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

var tracer = otel.Tracer("campus_chat_usecase")

type CampusChatUseCase struct {
	messageRepo message.BroadcastRepository
	profileRepo profile.Repository
	publisher   feed.Publisher
	logger      logger.Logger
}

func NewCampusChatUseCase(
	messages message.BroadcastRepository,
	profiles profile.Repository,
	publisher feed.Publisher,
	log logger.Logger,
) *CampusChatUseCase {
	return &CampusChatUseCase{messageRepo: messages, profileRepo: profiles, publisher: publisher, logger: log}
}

func (uc *CampusChatUseCase) ExecuteList(ctx context.Context) ([]*message.BroadcastMessage, error) {
	ctx, span := tracer.Start(ctx, "ListCampusMessages")
	defer span.End()

	msgs, err := uc.messageRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("messages.count", len(msgs)))
	return msgs, nil
}

type SendInput struct {
	UserID uuid.UUID
	Text   string
}

func (uc *CampusChatUseCase) ExecuteSend(ctx context.Context, input SendInput) (*message.BroadcastMessage, error) {
	ctx, span := tracer.Start(ctx, "SendCampusMessage")
	defer span.End()

	m, err := message.NewBroadcast(input.UserID, input.Text)
	if err != nil {
		return nil, bodyError(err)
	}

	if err := uc.messageRepo.Save(ctx, m); err != nil {
		span.RecordError(err)
		return nil, err
	}

	e, err := feed.NewInsertEvent(feed.TableCampusMessages, m)
	if err == nil {
		err = uc.publisher.Publish(ctx, e)
	}
	if err != nil {
		uc.logger.Error("Failed to publish campus message event", err, zap.String("message_id", m.ID.String()))
	}

	names, err := uc.profileRepo.FindNames(ctx, []uuid.UUID{m.UserID})
	if err != nil {
		uc.logger.Warn("Failed to resolve sender name", zap.String("user_id", m.UserID.String()), zap.Error(err))
	} else {
		m.SenderName = names[m.UserID]
	}
	return m, nil
}

func bodyError(err error) error {
	switch {
	case errors.Is(err, message.ErrEmptyMessage):
		return apperror.NewValidation("Message cannot be empty", err)
	case errors.Is(err, message.ErrMessageTooLong):
		return apperror.NewValidation("Message is too long", err)
	}
	return apperror.NewInvalidInput("invalid message", err)
}
