package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/internal/mocks"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

func newUseCase() (*DirectoryUseCase, *mocks.ProfileRepo, *mocks.ConnectionRepo) {
	profiles := new(mocks.ProfileRepo)
	conns := new(mocks.ConnectionRepo)
	return NewDirectoryUseCase(profiles, conns, logger.NewNopLogger()), profiles, conns
}

func TestListStudents(t *testing.T) {
	viewer := uuid.New()
	ana := &profile.Profile{ID: uuid.New(), Name: "Ana Lima", Department: "Computer Science"}
	ben := &profile.Profile{ID: uuid.New(), Name: "Ben", Department: "History"}
	cid := &profile.Profile{ID: uuid.New(), Name: "Cid", Department: "Physics"}

	pendingToViewer := &connection.Connection{ID: uuid.New(), UserID: ana.ID, ConnectedUserID: viewer, Status: connection.StatusPending}
	acceptedWithBen := &connection.Connection{ID: uuid.New(), UserID: viewer, ConnectedUserID: ben.ID, Status: connection.StatusAccepted}

	t.Run("derives status for every student", func(t *testing.T) {
		uc, profiles, conns := newUseCase()
		profiles.On("ListExcept", mock.Anything, viewer).Return([]*profile.Profile{ana, ben, cid}, nil)
		conns.On("ListByUser", mock.Anything, viewer).Return([]*connection.Connection{pendingToViewer, acceptedWithBen}, nil)

		students, err := uc.ExecuteListStudents(context.Background(), viewer, "")
		require.NoError(t, err)
		require.Len(t, students, 3)

		assert.Equal(t, connection.ViewAccept, students[0].Status)
		require.NotNil(t, students[0].ConnectionID)
		assert.Equal(t, pendingToViewer.ID, *students[0].ConnectionID)
		assert.Equal(t, connection.ViewConnected, students[1].Status)
		assert.Equal(t, connection.ViewNone, students[2].Status)
		assert.Nil(t, students[2].ConnectionID)
	})

	t.Run("filters by name or department ignoring case", func(t *testing.T) {
		uc, profiles, conns := newUseCase()
		profiles.On("ListExcept", mock.Anything, viewer).Return([]*profile.Profile{ana, ben, cid}, nil)
		conns.On("ListByUser", mock.Anything, viewer).Return([]*connection.Connection{}, nil)

		students, err := uc.ExecuteListStudents(context.Background(), viewer, "  SCIENCE ")
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, ana.ID, students[0].Profile.ID)

		students, err = uc.ExecuteListStudents(context.Background(), viewer, "be")
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, ben.ID, students[0].Profile.ID)
	})
}

func TestSendRequest(t *testing.T) {
	viewer, student := uuid.New(), uuid.New()

	t.Run("creates a pending request", func(t *testing.T) {
		uc, profiles, conns := newUseCase()
		profiles.On("FindByID", mock.Anything, student).Return(&profile.Profile{ID: student}, nil)
		conns.On("FindBetween", mock.Anything, viewer, student).Return(nil, connection.ErrConnectionNotFound)
		conns.On("Save", mock.Anything, mock.AnythingOfType("*connection.Connection")).Return(nil)

		c, err := uc.ExecuteSendRequest(context.Background(), viewer, student)
		require.NoError(t, err)
		assert.Equal(t, viewer, c.UserID)
		assert.Equal(t, student, c.ConnectedUserID)
		assert.Equal(t, connection.StatusPending, c.Status)
	})

	t.Run("existing record in either direction conflicts", func(t *testing.T) {
		uc, profiles, conns := newUseCase()
		profiles.On("FindByID", mock.Anything, student).Return(&profile.Profile{ID: student}, nil)
		reverse := &connection.Connection{ID: uuid.New(), UserID: student, ConnectedUserID: viewer, Status: connection.StatusPending}
		conns.On("FindBetween", mock.Anything, viewer, student).Return(reverse, nil)

		_, err := uc.ExecuteSendRequest(context.Background(), viewer, student)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		conns.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("self request is invalid", func(t *testing.T) {
		uc, profiles, _ := newUseCase()
		_, err := uc.ExecuteSendRequest(context.Background(), viewer, viewer)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown student", func(t *testing.T) {
		uc, profiles, _ := newUseCase()
		profiles.On("FindByID", mock.Anything, student).Return(nil, profile.ErrProfileNotFound)

		_, err := uc.ExecuteSendRequest(context.Background(), viewer, student)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestAccept(t *testing.T) {
	initiator, recipient := uuid.New(), uuid.New()

	pending := func() *connection.Connection {
		return &connection.Connection{ID: uuid.New(), UserID: initiator, ConnectedUserID: recipient, Status: connection.StatusPending}
	}

	t.Run("recipient accepts", func(t *testing.T) {
		uc, _, conns := newUseCase()
		c := pending()
		conns.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		conns.On("MarkAccepted", mock.Anything, c.ID, recipient).Return(nil)

		out, err := uc.ExecuteAccept(context.Background(), recipient, c.ID)
		require.NoError(t, err)
		assert.Equal(t, connection.StatusAccepted, out.Status)
	})

	t.Run("initiator cannot accept", func(t *testing.T) {
		uc, _, conns := newUseCase()
		c := pending()
		conns.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		_, err := uc.ExecuteAccept(context.Background(), initiator, c.ID)
		assert.ErrorIs(t, err, apperror.ErrPermission)
		conns.AssertNotCalled(t, "MarkAccepted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already accepted conflicts", func(t *testing.T) {
		uc, _, conns := newUseCase()
		c := pending()
		c.Status = connection.StatusAccepted
		conns.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		_, err := uc.ExecuteAccept(context.Background(), recipient, c.ID)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}
