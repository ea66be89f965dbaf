package campuschat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/campus-connect/internal/domain/feed"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/mocks"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

func TestSend_RejectsBlankWithoutStorage(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		repo := new(mocks.BroadcastRepo)
		profiles := new(mocks.ProfileRepo)
		fd := mocks.NewFeed()
		uc := NewCampusChatUseCase(repo, profiles, fd, logger.NewNopLogger())

		_, err := uc.ExecuteSend(context.Background(), SendInput{UserID: uuid.New(), Text: text})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Message cannot be empty", appErr.Message)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Empty(t, fd.Published)
	}
}

func TestSend_SavesTrimmedAndPublishes(t *testing.T) {
	repo := new(mocks.BroadcastRepo)
	profiles := new(mocks.ProfileRepo)
	fd := mocks.NewFeed()
	uc := NewCampusChatUseCase(repo, profiles, fd, logger.NewNopLogger())
	sender := uuid.New()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(m *message.BroadcastMessage) bool {
		return m.Body == "hello" && m.UserID == sender
	})).Return(nil)
	profiles.On("FindNames", mock.Anything, []uuid.UUID{sender}).Return(map[uuid.UUID]string{sender: "Ana"}, nil)

	m, err := uc.ExecuteSend(context.Background(), SendInput{UserID: sender, Text: "  hello "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", m.SenderName)

	require.Len(t, fd.Published, 1)
	assert.Equal(t, feed.TableCampusMessages, fd.Published[0].Table)
	var record message.BroadcastMessage
	require.NoError(t, fd.Published[0].Decode(&record))
	assert.Equal(t, m.ID, record.ID)
	assert.Empty(t, record.SenderName)
}

func TestSend_FeedFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.BroadcastRepo)
	profiles := new(mocks.ProfileRepo)
	fd := mocks.NewFeed()
	fd.PubErr = errors.New("redis down")
	uc := NewCampusChatUseCase(repo, profiles, fd, logger.NewNopLogger())
	sender := uuid.New()

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	profiles.On("FindNames", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	m, err := uc.ExecuteSend(context.Background(), SendInput{UserID: sender, Text: "hi"})
	require.NoError(t, err)
	assert.Empty(t, m.SenderName)
}

func TestList_PropagatesError(t *testing.T) {
	repo := new(mocks.BroadcastRepo)
	uc := NewCampusChatUseCase(repo, new(mocks.ProfileRepo), mocks.NewFeed(), logger.NewNopLogger())
	repo.On("ListAll", mock.Anything).Return(nil, apperror.NewInternal("boom", nil))

	_, err := uc.ExecuteList(context.Background())
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
