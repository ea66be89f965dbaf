package connection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Connection is a directed request: UserID initiated it, ConnectedUserID received it.
type Connection struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ConnectedUserID uuid.UUID `json:"connected_user_id"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrAlreadyExists      = errors.New("connection already exists")
	ErrNotRecipient       = errors.New("only the recipient can accept a connection request")
	ErrNotPending         = errors.New("connection is not pending")
	ErrSelfConnection     = errors.New("cannot connect to yourself")
)

func New(initiator, recipient uuid.UUID) (*Connection, error) {
	if initiator == recipient {
		return nil, ErrSelfConnection
	}
	now := time.Now().UTC()
	return &Connection{
		ID:              uuid.New(),
		UserID:          initiator,
		ConnectedUserID: recipient,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Between reports whether c links a and b in either direction.
func (c *Connection) Between(a, b uuid.UUID) bool {
	return (c.UserID == a && c.ConnectedUserID == b) ||
		(c.UserID == b && c.ConnectedUserID == a)
}

// Other returns the party that is not viewer.
func (c *Connection) Other(viewer uuid.UUID) uuid.UUID {
	if c.UserID == viewer {
		return c.ConnectedUserID
	}
	return c.UserID
}

// Accept moves a pending request to accepted. Only the recipient may do it.
func (c *Connection) Accept(viewer uuid.UUID) error {
	if c.ConnectedUserID != viewer {
		return ErrNotRecipient
	}
	if c.Status != StatusPending {
		return ErrNotPending
	}
	c.Status = StatusAccepted
	c.UpdatedAt = time.Now().UTC()
	return nil
}

type Repository interface {
	Save(ctx context.Context, c *Connection) error
	FindByID(ctx context.Context, id uuid.UUID) (*Connection, error)
	// ListByUser returns every connection where userID is either party.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Connection, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]*Connection, error)
	FindBetween(ctx context.Context, a, b uuid.UUID) (*Connection, error)
	// MarkAccepted flips a pending row addressed to recipient.
	MarkAccepted(ctx context.Context, id uuid.UUID, recipient uuid.UUID) error
}
