package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/validation"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo     profile.Repository
	skillRepo       profile.SkillRepository
	achievementRepo profile.AchievementRepository
	validator       *validation.Validator
	logger          logger.Logger
}

func NewProfileUseCase(
	repo profile.Repository,
	skills profile.SkillRepository,
	achievements profile.AchievementRepository,
	v *validation.Validator,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:     repo,
		skillRepo:       skills,
		achievementRepo: achievements,
		validator:       v,
		logger:          log,
	}
}

type GetProfileInput struct {
	ViewerID  uuid.UUID
	ProfileID uuid.UUID
}

type GetProfileOutput struct {
	Profile      *profile.Profile
	Skills       []*profile.Skill
	Achievements []*profile.Achievement
	Own          bool
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", input.ProfileID.String()))

	p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.ProfileID.String())
		}
		span.RecordError(err)
		return nil, err
	}

	skills, err := uc.skillRepo.ListByUser(ctx, p.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	achievements, err := uc.achievementRepo.ListByUser(ctx, p.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &GetProfileOutput{
		Profile:      p,
		Skills:       skills,
		Achievements: achievements,
		Own:          p.ID == input.ViewerID,
	}, nil
}

type UpdateProfileInput struct {
	UserID     uuid.UUID
	Name       string
	Department string
	Bio        string
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	form := validation.ProfileForm{Name: input.Name, Department: input.Department, Bio: input.Bio}
	form.Normalize()
	if err := uc.validator.Check(form); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			return nil, apperror.NewValidation(vErr.First(), err)
		}
		return nil, apperror.NewInvalidInput("profile validation failed", err)
	}

	p, err := uc.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.UserID.String())
		}
		return nil, err
	}

	p.Name = form.Name
	p.Department = form.Department
	p.Bio = nil
	if form.Bio != "" {
		p.Bio = &form.Bio
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.UserID.String())
		}
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

type AddSkillInput struct {
	UserID uuid.UUID
	Name   string
	Type   string
}

// ExecuteAddSkill returns (nil, nil) without writing when the name is blank.
func (uc *ProfileUseCase) ExecuteAddSkill(ctx context.Context, input AddSkillInput) (*profile.Skill, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil
	}
	if len([]rune(name)) > 100 {
		return nil, apperror.NewValidation("Skill name must be at most 100 characters", nil)
	}

	skillType, err := profile.ParseSkillType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, apperror.NewValidation("Skill type must be technical or soft", err)
	}

	s := &profile.Skill{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Name:      name,
		Type:      skillType,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.skillRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	uc.logger.Debug("Skill added", zap.String("user_id", input.UserID.String()), zap.String("skill_id", s.ID.String()))
	return s, nil
}

func (uc *ProfileUseCase) ExecuteRemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if err := uc.skillRepo.Delete(ctx, skillID, userID); err != nil {
		if errors.Is(err, profile.ErrSkillNotFound) {
			return apperror.NewNotFound("skill", skillID.String())
		}
		return err
	}
	return nil
}

type AddAchievementInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Date        *time.Time
}

// ExecuteAddAchievement returns (nil, nil) without writing when the title is blank.
func (uc *ProfileUseCase) ExecuteAddAchievement(ctx context.Context, input AddAchievementInput) (*profile.Achievement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil
	}
	if len([]rune(title)) > 200 {
		return nil, apperror.NewValidation("Title must be at most 200 characters", nil)
	}

	a := &profile.Achievement{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Title:     title,
		Date:      input.Date,
		CreatedAt: time.Now().UTC(),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		a.Description = &desc
	}

	if err := uc.achievementRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	uc.logger.Debug("Achievement added", zap.String("user_id", input.UserID.String()), zap.String("achievement_id", a.ID.String()))
	return a, nil
}

func (uc *ProfileUseCase) ExecuteRemoveAchievement(ctx context.Context, userID, achievementID uuid.UUID) error {
	if err := uc.achievementRepo.Delete(ctx, achievementID, userID); err != nil {
		if errors.Is(err, profile.ErrAchievementNotFound) {
			return apperror.NewNotFound("achievement", achievementID.String())
		}
		return err
	}
	return nil
}
