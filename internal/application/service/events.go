package service

import (
	"context"

	"github.com/google/uuid"
)

type MessageEventType string

const (
	MessageEventAttachment MessageEventType = "direct_message.attachment"
)

type MessageEventPayload struct {
	EventType    MessageEventType `json:"event_type"`
	MessageID    uuid.UUID        `json:"message_id"`
	SenderID     uuid.UUID        `json:"sender_id"`
	ReceiverID   uuid.UUID        `json:"receiver_id,omitempty"`
	PublicID     string           `json:"public_id,omitempty"`
	ResourceType string           `json:"resource_type,omitempty"`
	FileName     string           `json:"file_name,omitempty"`
}

type MessageEventPublisher interface {
	PublishMessageEvent(ctx context.Context, payload MessageEventPayload) error
}
