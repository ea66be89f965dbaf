package directmessage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/feed"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

var tracer = otel.Tracer("direct_message_usecase")

const maxFileNameLength = 255

type DirectMessageUseCase struct {
	messageRepo message.DirectRepository
	connRepo    connection.Repository
	profileRepo profile.Repository
	uploader    service.Uploader
	publisher   feed.Publisher
	events      service.MessageEventPublisher
	folder      string
	logger      logger.Logger
}

func NewDirectMessageUseCase(
	messages message.DirectRepository,
	conns connection.Repository,
	profiles profile.Repository,
	uploader service.Uploader,
	publisher feed.Publisher,
	events service.MessageEventPublisher,
	folder string,
	log logger.Logger,
) *DirectMessageUseCase {
	return &DirectMessageUseCase{
		messageRepo: messages,
		connRepo:    conns,
		profileRepo: profiles,
		uploader:    uploader,
		publisher:   publisher,
		events:      events,
		folder:      folder,
		logger:      log,
	}
}

// Contact is an accepted connection seen from the viewer's side.
type Contact struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
}

func (uc *DirectMessageUseCase) ExecuteListConnections(ctx context.Context, viewerID uuid.UUID) ([]Contact, error) {
	ctx, span := tracer.Start(ctx, "ListMessageConnections")
	defer span.End()

	conns, err := uc.connRepo.ListAccepted(ctx, viewerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.Other(viewerID))
	}
	names, err := uc.profileRepo.FindNames(ctx, ids)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	contacts := make([]Contact, 0, len(conns))
	for _, c := range conns {
		other := c.Other(viewerID)
		contacts = append(contacts, Contact{ConnectionID: c.ID, UserID: other, Name: names[other]})
	}
	return contacts, nil
}

func (uc *DirectMessageUseCase) ExecuteListThread(ctx context.Context, viewerID, peerID uuid.UUID) ([]*message.DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "ListDirectThread")
	defer span.End()

	msgs, err := uc.messageRepo.ListBetween(ctx, viewerID, peerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("messages.count", len(msgs)))
	return msgs, nil
}

type SendInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Text       string
}

func (uc *DirectMessageUseCase) ExecuteSend(ctx context.Context, input SendInput) (*message.DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "SendDirectMessage")
	defer span.End()

	m, err := message.NewDirectText(input.SenderID, input.ReceiverID, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, message.ErrEmptyMessage):
			return nil, apperror.NewValidation("Message cannot be empty", err)
		case errors.Is(err, message.ErrMessageTooLong):
			return nil, apperror.NewValidation("Message is too long", err)
		}
		return nil, apperror.NewInvalidInput("invalid message", err)
	}

	if err := uc.requireConnected(ctx, input.SenderID, input.ReceiverID); err != nil {
		return nil, err
	}

	if err := uc.messageRepo.Save(ctx, m); err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.afterSave(ctx, m)
	return m, nil
}

type SendFileInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	File       io.Reader
	FileName   string
}

// ExecuteSendFile uploads the file, then records a message pointing at it.
func (uc *DirectMessageUseCase) ExecuteSendFile(ctx context.Context, input SendFileInput) (*message.DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "SendDirectFile")
	defer span.End()

	fileName := strings.TrimSpace(filepath.Base(input.FileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, apperror.NewValidation("File name is required", nil)
	}
	if len([]rune(fileName)) > maxFileNameLength {
		return nil, apperror.NewValidation("File name is too long", nil)
	}

	if err := uc.requireConnected(ctx, input.SenderID, input.ReceiverID); err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("%s/%s", uc.folder, input.SenderID.String())
	publicID := uuid.NewString()
	uploaded, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload chat file", err)
	}

	m := message.NewDirectFile(input.SenderID, input.ReceiverID, uploaded.URL, fileName)
	if err := uc.messageRepo.Save(ctx, m); err != nil {
		go func() {
			if delErr := uc.uploader.Delete(context.Background(), uploaded.PublicID, uploaded.ResourceType); delErr != nil {
				uc.logger.Error("Failed to remove orphaned upload", delErr, zap.String("public_id", uploaded.PublicID))
			}
		}()
		span.RecordError(err)
		return nil, err
	}
	uc.afterSave(ctx, m)

	payload := service.MessageEventPayload{
		EventType:    service.MessageEventAttachment,
		MessageID:    m.ID,
		SenderID:     m.SenderID,
		ReceiverID:   m.ReceiverID,
		PublicID:     uploaded.PublicID,
		ResourceType: uploaded.ResourceType,
		FileName:     fileName,
	}
	go func() {
		if err := uc.events.PublishMessageEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish Kafka 'direct_message.attachment' event", err, zap.String("message_id", m.ID.String()))
		}
	}()

	return m, nil
}

func (uc *DirectMessageUseCase) requireConnected(ctx context.Context, a, b uuid.UUID) error {
	if a == b {
		return apperror.NewInvalidInput("cannot message yourself", nil)
	}
	c, err := uc.connRepo.FindBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, connection.ErrConnectionNotFound) {
			return apperror.NewPermissionDenied("direct messages require an accepted connection")
		}
		return err
	}
	if c.Status != connection.StatusAccepted {
		return apperror.NewPermissionDenied("direct messages require an accepted connection")
	}
	return nil
}

// afterSave publishes the insert to live threads and resolves the sender
// name for the response. Neither failure undoes the write.
func (uc *DirectMessageUseCase) afterSave(ctx context.Context, m *message.DirectMessage) {
	e, err := feed.NewInsertEvent(feed.TableDirectMessages, m)
	if err == nil {
		err = uc.publisher.Publish(ctx, e)
	}
	if err != nil {
		uc.logger.Error("Failed to publish direct message event", err, zap.String("message_id", m.ID.String()))
	}

	names, err := uc.profileRepo.FindNames(ctx, []uuid.UUID{m.SenderID})
	if err != nil {
		uc.logger.Warn("Failed to resolve sender name", zap.String("user_id", m.SenderID.String()), zap.Error(err))
		return
	}
	m.SenderName = names[m.SenderID]
}
