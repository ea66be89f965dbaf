// Package mocks holds testify mocks of the domain repositories and
// application services.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/internal/domain/user"
)

type UserRepo struct {
	mock.Mock
}

func (m *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *UserRepo) CreateWithProfile(ctx context.Context, u *user.User, p *profile.Profile) error {
	return m.Called(ctx, u, p).Error(0)
}

type ProfileRepo struct {
	mock.Mock
}

func (m *ProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *ProfileRepo) ListExcept(ctx context.Context, id uuid.UUID) ([]*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

func (m *ProfileRepo) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *ProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type SkillRepo struct {
	mock.Mock
}

func (m *SkillRepo) Save(ctx context.Context, s *profile.Skill) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SkillRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *SkillRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile.Skill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Skill), args.Error(1)
}

type AchievementRepo struct {
	mock.Mock
}

func (m *AchievementRepo) Save(ctx context.Context, a *profile.Achievement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AchievementRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *AchievementRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile.Achievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Achievement), args.Error(1)
}

type ConnectionRepo struct {
	mock.Mock
}

func (m *ConnectionRepo) Save(ctx context.Context, c *connection.Connection) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ConnectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*connection.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connection.Connection), args.Error(1)
}

func (m *ConnectionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*connection.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*connection.Connection), args.Error(1)
}

func (m *ConnectionRepo) ListAccepted(ctx context.Context, userID uuid.UUID) ([]*connection.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*connection.Connection), args.Error(1)
}

func (m *ConnectionRepo) FindBetween(ctx context.Context, a, b uuid.UUID) (*connection.Connection, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connection.Connection), args.Error(1)
}

func (m *ConnectionRepo) MarkAccepted(ctx context.Context, id uuid.UUID, recipient uuid.UUID) error {
	return m.Called(ctx, id, recipient).Error(0)
}

type BroadcastRepo struct {
	mock.Mock
}

func (m *BroadcastRepo) Save(ctx context.Context, msg *message.BroadcastMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *BroadcastRepo) ListAll(ctx context.Context) ([]*message.BroadcastMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.BroadcastMessage), args.Error(1)
}

type DirectRepo struct {
	mock.Mock
}

func (m *DirectRepo) Save(ctx context.Context, msg *message.DirectMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *DirectRepo) FindByID(ctx context.Context, id uuid.UUID) (*message.DirectMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*message.DirectMessage), args.Error(1)
}

func (m *DirectRepo) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*message.DirectMessage, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.DirectMessage), args.Error(1)
}

func (m *DirectRepo) SetPreviewURL(ctx context.Context, id uuid.UUID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}
