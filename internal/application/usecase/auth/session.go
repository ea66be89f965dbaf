package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/auth"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

// SessionUseCase is the gate in front of every authenticated route.
type SessionUseCase struct {
	jwtSvc      *auth.JWTService
	store       service.SessionStore
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewSessionUseCase(jwtSvc *auth.JWTService, store service.SessionStore, profileRepo profile.Repository, log logger.Logger) *SessionUseCase {
	return &SessionUseCase{jwtSvc: jwtSvc, store: store, profileRepo: profileRepo, logger: log}
}

type Session struct {
	UserID     uuid.UUID
	Email      string
	Name       string
	Department string
	ExpiresAt  time.Time
}

// Authenticate validates a bearer token and checks it has not been revoked.
func (uc *SessionUseCase) Authenticate(ctx context.Context, token string) (*auth.CustomClaims, error) {
	claims, err := uc.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token", err)
	}

	revoked, err := uc.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to check session", err)
	}
	if revoked {
		return nil, apperror.NewUnauthorized("session signed out", nil)
	}
	return claims, nil
}

// Current resolves the identity behind an authenticated request.
func (uc *SessionUseCase) Current(ctx context.Context, claims *auth.CustomClaims) (*Session, error) {
	p, err := uc.profileRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewUnauthorized("account has no profile", err)
		}
		return nil, err
	}

	s := &Session{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Name:       p.Name,
		Department: p.Department,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// SignOut revokes the token for the rest of its lifetime.
func (uc *SessionUseCase) SignOut(ctx context.Context, claims *auth.CustomClaims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := uc.store.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.NewInternal("failed to revoke session", err)
	}
	uc.logger.Info("Session signed out", zap.String("user_id", claims.UserID.String()))
	return nil
}
