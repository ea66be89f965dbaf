package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

var tracer = otel.Tracer("directory_usecase")

type DirectoryUseCase struct {
	profileRepo profile.Repository
	connRepo    connection.Repository
	logger      logger.Logger
}

func NewDirectoryUseCase(profiles profile.Repository, conns connection.Repository, log logger.Logger) *DirectoryUseCase {
	return &DirectoryUseCase{profileRepo: profiles, connRepo: conns, logger: log}
}

// Student is a directory entry as seen by the viewer.
type Student struct {
	Profile      *profile.Profile
	Status       connection.ViewerStatus
	ConnectionID *uuid.UUID
}

// ExecuteListStudents lists everyone but the viewer, optionally filtered by a
// case-insensitive substring of name or department.
func (uc *DirectoryUseCase) ExecuteListStudents(ctx context.Context, viewerID uuid.UUID, query string) ([]Student, error) {
	ctx, span := tracer.Start(ctx, "ListStudents")
	defer span.End()

	profiles, err := uc.profileRepo.ListExcept(ctx, viewerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	conns, err := uc.connRepo.ListByUser(ctx, viewerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	students := make([]Student, 0, len(profiles))
	for _, p := range profiles {
		if !matches(p, needle) {
			continue
		}
		status, c := connection.DeriveStatus(viewerID, p.ID, conns)
		s := Student{Profile: p, Status: status}
		if c != nil {
			id := c.ID
			s.ConnectionID = &id
		}
		students = append(students, s)
	}
	span.SetAttributes(attribute.Int("students.count", len(students)))
	return students, nil
}

func matches(p *profile.Profile, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Department), needle)
}

func (uc *DirectoryUseCase) ExecuteSendRequest(ctx context.Context, viewerID, studentID uuid.UUID) (*connection.Connection, error) {
	ctx, span := tracer.Start(ctx, "SendConnectionRequest")
	defer span.End()

	c, err := connection.New(viewerID, studentID)
	if err != nil {
		return nil, apperror.NewInvalidInput("cannot connect to yourself", err)
	}

	if _, err := uc.profileRepo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("student", studentID.String())
		}
		return nil, err
	}

	existing, err := uc.connRepo.FindBetween(ctx, viewerID, studentID)
	if err != nil && !errors.Is(err, connection.ErrConnectionNotFound) {
		span.RecordError(err)
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("connection", "student", studentID.String())
	}

	if err := uc.connRepo.Save(ctx, c); err != nil {
		if errors.Is(err, connection.ErrAlreadyExists) {
			return nil, apperror.NewConflict("connection", "student", studentID.String())
		}
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Connection requested",
		zap.String("from", viewerID.String()),
		zap.String("to", studentID.String()),
	)
	return c, nil
}

func (uc *DirectoryUseCase) ExecuteAccept(ctx context.Context, viewerID, connectionID uuid.UUID) (*connection.Connection, error) {
	ctx, span := tracer.Start(ctx, "AcceptConnection")
	defer span.End()

	c, err := uc.connRepo.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, connection.ErrConnectionNotFound) {
			return nil, apperror.NewNotFound("connection", connectionID.String())
		}
		return nil, err
	}

	if err := c.Accept(viewerID); err != nil {
		switch {
		case errors.Is(err, connection.ErrNotRecipient):
			return nil, apperror.NewPermissionDenied(err.Error())
		case errors.Is(err, connection.ErrNotPending):
			return nil, apperror.NewAppError(apperror.ErrConflict, "connection is already accepted", connectionID.String(), err)
		}
		return nil, err
	}

	if err := uc.connRepo.MarkAccepted(ctx, c.ID, viewerID); err != nil {
		if errors.Is(err, connection.ErrNotPending) {
			return nil, apperror.NewAppError(apperror.ErrConflict, "connection is already accepted", connectionID.String(), err)
		}
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Connection accepted", zap.String("connection_id", c.ID.String()))
	return c, nil
}
