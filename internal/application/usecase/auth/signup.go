package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/internal/domain/user"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/auth"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/validation"
)

type SignUpUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	validator *validation.Validator
	logger    logger.Logger
}

func NewSignUpUseCase(repo user.Repository, jwtSvc *auth.JWTService, v *validation.Validator, log logger.Logger) *SignUpUseCase {
	return &SignUpUseCase{userRepo: repo, jwtSvc: jwtSvc, validator: v, logger: log}
}

type SignUpInput struct {
	Email      string
	Password   string
	Name       string
	Department string
}

func (uc *SignUpUseCase) Execute(ctx context.Context, input SignUpInput) (*AuthOutput, error) {
	ctx, span := tracer.Start(ctx, "SignUp")
	defer span.End()

	form := validation.SignUpForm{
		Email:      input.Email,
		Password:   input.Password,
		Name:       input.Name,
		Department: input.Department,
	}
	form.Normalize()
	if err := checkForm(uc.validator, form); err != nil {
		span.RecordError(err)
		return nil, err
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        form.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	p := &profile.Profile{
		ID:         u.ID,
		Name:       form.Name,
		Department: form.Department,
		Email:      form.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.userRepo.CreateWithProfile(ctx, u, p); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyTaken) {
			err = apperror.NewConflict("user", "email", form.Email)
		}
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token after sign up", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	uc.logger.Info("Account created", zap.String("user_id", u.ID.String()), zap.String("department", p.Department))
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &AuthOutput{AccessToken: token, User: u}, nil
}
