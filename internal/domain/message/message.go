package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BroadcastMessage is a campus chat message visible to every signed-in user.
type BroadcastMessage struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Body       string    `json:"message"`
	SenderName string    `json:"sender_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DirectMessage is visible only to its sender and receiver. It carries a
// text body, an uploaded file reference, or both.
type DirectMessage struct {
	ID             uuid.UUID `json:"id"`
	SenderID       uuid.UUID `json:"sender_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
	Body           *string   `json:"message"`
	FileURL        *string   `json:"file_url"`
	FileName       *string   `json:"file_name"`
	FilePreviewURL *string   `json:"file_preview_url"`
	SenderName     string    `json:"sender_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *BroadcastMessage) MessageID() uuid.UUID { return m.ID }
func (m *DirectMessage) MessageID() uuid.UUID    { return m.ID }

// Between reports whether m was exchanged between a and b, in either direction.
func (m *DirectMessage) Between(a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) ||
		(m.SenderID == b && m.ReceiverID == a)
}

var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrMessageTooLong  = errors.New("message is too long")
	ErrMessageNotFound = errors.New("message not found")
)

const MaxBodyLength = 4000

// NormalizeBody trims text and rejects blank or oversized input.
func NormalizeBody(text string) (string, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return "", ErrEmptyMessage
	}
	if len([]rune(body)) > MaxBodyLength {
		return "", ErrMessageTooLong
	}
	return body, nil
}

func NewBroadcast(userID uuid.UUID, text string) (*BroadcastMessage, error) {
	body, err := NormalizeBody(text)
	if err != nil {
		return nil, err
	}
	return &BroadcastMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func NewDirectText(sender, receiver uuid.UUID, text string) (*DirectMessage, error) {
	body, err := NormalizeBody(text)
	if err != nil {
		return nil, err
	}
	return &DirectMessage{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Body:       &body,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func NewDirectFile(sender, receiver uuid.UUID, fileURL, fileName string) *DirectMessage {
	return &DirectMessage{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		FileURL:    &fileURL,
		FileName:   &fileName,
		CreatedAt:  time.Now().UTC(),
	}
}

type BroadcastRepository interface {
	Save(ctx context.Context, m *BroadcastMessage) error
	// ListAll returns every message oldest first, sender names resolved.
	ListAll(ctx context.Context) ([]*BroadcastMessage, error)
}

type DirectRepository interface {
	Save(ctx context.Context, m *DirectMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*DirectMessage, error)
	// ListBetween returns the a<->b thread oldest first, sender names resolved.
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]*DirectMessage, error)
	SetPreviewURL(ctx context.Context, id uuid.UUID, url string) error
}
