package auth

import (
	"context"
	"errors"

	"github.com/khoahotran/campus-connect/internal/domain/user"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/auth"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

type LoginUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	validator *validation.Validator
	logger    logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, v *validation.Validator, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		validator: v,
		logger:    log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	AccessToken string
	User        *user.User
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*AuthOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	form := validation.SignInForm{Email: input.Email, Password: input.Password}
	form.Normalize()
	if err := checkForm(uc.validator, form); err != nil {
		span.RecordError(err)
		return nil, err
	}

	u, err := uc.userRepo.FindByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			err = apperror.NewUnauthorized("unknown email", ErrInvalidCredentials)
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(form.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", ErrInvalidCredentials)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &AuthOutput{AccessToken: token, User: u}, nil
}

// checkForm runs the validator and turns a failure into the user-facing error.
func checkForm(v *validation.Validator, form any) error {
	err := v.Check(form)
	if err == nil {
		return nil
	}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return apperror.NewValidation(vErr.First(), err)
	}
	return apperror.NewInvalidInput("form validation failed", err)
}
