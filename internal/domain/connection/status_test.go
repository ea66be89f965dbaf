package connection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	viewer := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	dave := uuid.New()

	conns := []*Connection{
		{ID: uuid.New(), UserID: viewer, ConnectedUserID: alice, Status: StatusPending},
		{ID: uuid.New(), UserID: bob, ConnectedUserID: viewer, Status: StatusPending},
		{ID: uuid.New(), UserID: carol, ConnectedUserID: viewer, Status: StatusAccepted},
		{ID: uuid.New(), UserID: alice, ConnectedUserID: bob, Status: StatusPending},
	}

	tests := []struct {
		name      string
		candidate uuid.UUID
		want      ViewerStatus
		wantConn  *Connection
	}{
		{"viewer initiated pending", alice, ViewPending, conns[0]},
		{"viewer is recipient of pending", bob, ViewAccept, conns[1]},
		{"accepted regardless of direction", carol, ViewConnected, conns[2]},
		{"no record", dave, ViewNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, c := DeriveStatus(viewer, tt.candidate, conns)
			assert.Equal(t, tt.want, got)
			assert.Same(t, tt.wantConn, c)
		})
	}
}

func TestDeriveStatus_IgnoresThirdPartyRows(t *testing.T) {
	viewer := uuid.New()
	a, b := uuid.New(), uuid.New()
	conns := []*Connection{{UserID: a, ConnectedUserID: b, Status: StatusPending}}

	got, _ := DeriveStatus(viewer, a, conns)
	assert.Equal(t, ViewNone, got)
}

func TestConnection_Accept(t *testing.T) {
	initiator, recipient := uuid.New(), uuid.New()

	c, err := New(initiator, recipient)
	assert.NoError(t, err)

	assert.ErrorIs(t, c.Accept(initiator), ErrNotRecipient)
	assert.NoError(t, c.Accept(recipient))
	assert.Equal(t, StatusAccepted, c.Status)
	assert.ErrorIs(t, c.Accept(recipient), ErrNotPending)
}

func TestNew_RejectsSelf(t *testing.T) {
	id := uuid.New()
	_, err := New(id, id)
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestConnection_Other(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := &Connection{UserID: a, ConnectedUserID: b}
	assert.Equal(t, b, c.Other(a))
	assert.Equal(t, a, c.Other(b))
}
