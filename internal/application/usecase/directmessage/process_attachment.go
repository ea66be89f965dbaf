package directmessage

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

const previewTransformation = "c_limit,w_400,h_400"

// ProcessAttachmentUseCase runs in the worker and adds a preview URL to
// image attachments.
type ProcessAttachmentUseCase struct {
	messageRepo message.DirectRepository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewProcessAttachmentUseCase(r message.DirectRepository, u service.Uploader, log logger.Logger) *ProcessAttachmentUseCase {
	return &ProcessAttachmentUseCase{messageRepo: r, uploader: u, logger: log}
}

func (uc *ProcessAttachmentUseCase) Execute(ctx context.Context, payload service.MessageEventPayload) error {
	l := uc.logger.With(zap.String("message_id", payload.MessageID.String()), zap.String("event_type", string(payload.EventType)))

	if payload.EventType != service.MessageEventAttachment {
		l.Debug("Ignoring message event")
		return nil
	}
	if payload.ResourceType != "image" {
		l.Info("Attachment is not an image, no preview", zap.String("resource_type", payload.ResourceType))
		return nil
	}

	m, err := uc.messageRepo.FindByID(ctx, payload.MessageID)
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			l.Warn("Message not found, skipping event")
			return nil
		}
		return apperror.NewInternal("failed to get direct message", err)
	}
	if m.FilePreviewURL != nil {
		l.Info("Preview already set, skipping")
		return nil
	}

	previewURL, err := uc.uploader.ImageVariantURL(payload.PublicID, previewTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build preview URL", err)
	}

	if err := uc.messageRepo.SetPreviewURL(ctx, m.ID, previewURL); err != nil {
		return apperror.NewInternal("failed to store preview URL", err)
	}

	l.Info("Successfully processed attachment")
	return nil
}
