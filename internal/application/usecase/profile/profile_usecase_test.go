package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/internal/mocks"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/validation"
)

type fixture struct {
	profiles     *mocks.ProfileRepo
	skills       *mocks.SkillRepo
	achievements *mocks.AchievementRepo
	uc           *ProfileUseCase
}

func newFixture() *fixture {
	f := &fixture{
		profiles:     new(mocks.ProfileRepo),
		skills:       new(mocks.SkillRepo),
		achievements: new(mocks.AchievementRepo),
	}
	f.uc = NewProfileUseCase(f.profiles, f.skills, f.achievements, validation.New(), logger.NewNopLogger())
	return f
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("own profile with skills and achievements", func(t *testing.T) {
		f := newFixture()
		p := &profile.Profile{ID: owner, Name: "Ana", Department: "CS"}
		f.profiles.On("FindByID", mock.Anything, owner).Return(p, nil)
		f.skills.On("ListByUser", mock.Anything, owner).Return([]*profile.Skill{{Name: "Go"}}, nil)
		f.achievements.On("ListByUser", mock.Anything, owner).Return([]*profile.Achievement{}, nil)

		out, err := f.uc.ExecuteGetProfile(ctx, GetProfileInput{ViewerID: owner, ProfileID: owner})
		require.NoError(t, err)
		assert.True(t, out.Own)
		assert.Len(t, out.Skills, 1)
	})

	t.Run("someone else's profile is not own", func(t *testing.T) {
		f := newFixture()
		p := &profile.Profile{ID: owner}
		f.profiles.On("FindByID", mock.Anything, owner).Return(p, nil)
		f.skills.On("ListByUser", mock.Anything, owner).Return([]*profile.Skill{}, nil)
		f.achievements.On("ListByUser", mock.Anything, owner).Return([]*profile.Achievement{}, nil)

		out, err := f.uc.ExecuteGetProfile(ctx, GetProfileInput{ViewerID: uuid.New(), ProfileID: owner})
		require.NoError(t, err)
		assert.False(t, out.Own)
	})

	t.Run("missing profile is not found", func(t *testing.T) {
		f := newFixture()
		f.profiles.On("FindByID", mock.Anything, owner).Return(nil, profile.ErrProfileNotFound)

		_, err := f.uc.ExecuteGetProfile(ctx, GetProfileInput{ViewerID: owner, ProfileID: owner})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		f.skills.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("blank name is rejected before any lookup", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.ExecuteUpdateProfile(ctx, UpdateProfileInput{UserID: owner, Name: "  ", Department: "CS"})

		require.Error(t, err)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Name is required", appErr.Message)
		f.profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("trims fields and clears blank bio", func(t *testing.T) {
		f := newFixture()
		bio := "old bio"
		f.profiles.On("FindByID", mock.Anything, owner).Return(&profile.Profile{ID: owner, Bio: &bio}, nil)
		f.profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *profile.Profile) bool {
			return p.Name == "Ana" && p.Department == "Math" && p.Bio == nil
		})).Return(nil)

		p, err := f.uc.ExecuteUpdateProfile(ctx, UpdateProfileInput{UserID: owner, Name: " Ana ", Department: "Math ", Bio: "  "})
		require.NoError(t, err)
		assert.Nil(t, p.Bio)
		f.profiles.AssertExpectations(t)
	})
}

func TestAddSkill(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("blank name is a no-op", func(t *testing.T) {
		f := newFixture()
		s, err := f.uc.ExecuteAddSkill(ctx, AddSkillInput{UserID: owner, Name: "   "})
		assert.NoError(t, err)
		assert.Nil(t, s)
		f.skills.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("type defaults to technical", func(t *testing.T) {
		f := newFixture()
		f.skills.On("Save", mock.Anything, mock.AnythingOfType("*profile.Skill")).Return(nil)

		s, err := f.uc.ExecuteAddSkill(ctx, AddSkillInput{UserID: owner, Name: " Go "})
		require.NoError(t, err)
		assert.Equal(t, "Go", s.Name)
		assert.Equal(t, profile.SkillTechnical, s.Type)
		assert.Equal(t, owner, s.UserID)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.ExecuteAddSkill(ctx, AddSkillInput{UserID: owner, Name: "Go", Type: "magic"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		f.skills.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddAchievement(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("blank title is a no-op", func(t *testing.T) {
		f := newFixture()
		a, err := f.uc.ExecuteAddAchievement(ctx, AddAchievementInput{UserID: owner, Title: "", Description: "ignored"})
		assert.NoError(t, err)
		assert.Nil(t, a)
		f.achievements.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("stores optional fields", func(t *testing.T) {
		f := newFixture()
		date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		f.achievements.On("Save", mock.Anything, mock.AnythingOfType("*profile.Achievement")).Return(nil)

		a, err := f.uc.ExecuteAddAchievement(ctx, AddAchievementInput{UserID: owner, Title: "Hackathon", Description: "1st", Date: &date})
		require.NoError(t, err)
		require.NotNil(t, a.Description)
		assert.Equal(t, "1st", *a.Description)
		assert.Equal(t, &date, a.Date)
	})
}

func TestRemoveSkill_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f.skills.On("Delete", mock.Anything, id, owner).Return(profile.ErrSkillNotFound)

	err := f.uc.ExecuteRemoveSkill(ctx, owner, id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
