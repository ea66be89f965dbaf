package http

import (
	"time"

	"github.com/google/uuid"

	authUC "github.com/khoahotran/campus-connect/internal/application/usecase/auth"
	directoryUC "github.com/khoahotran/campus-connect/internal/application/usecase/directory"
	profileUC "github.com/khoahotran/campus-connect/internal/application/usecase/profile"
	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
)

// Auth DTOs
type SignUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
}

func ToAuthResponse(out *authUC.AuthOutput) AuthResponse {
	return AuthResponse{AccessToken: out.AccessToken, TokenType: "Bearer", UserID: out.User.ID}
}

type SessionResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func ToSessionResponse(s *authUC.Session) SessionResponse {
	return SessionResponse{
		UserID:     s.UserID,
		Email:      s.Email,
		Name:       s.Name,
		Department: s.Department,
		ExpiresAt:  s.ExpiresAt,
	}
}

// Profile DTOs
type SkillDTO struct {
	ID        uuid.UUID `json:"id"`
	SkillName string    `json:"skill_name"`
	SkillType string    `json:"skill_type"`
}

type AchievementDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
}

type ProfileDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Department   string           `json:"department"`
	Bio          *string          `json:"bio"`
	Email        string           `json:"email"`
	Own          bool             `json:"own"`
	Skills       []SkillDTO       `json:"skills"`
	Achievements []AchievementDTO `json:"achievements"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
}

type AddSkillRequest struct {
	SkillName string `json:"skill_name"`
	SkillType string `json:"skill_type"`
}

type AddAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

const dateLayout = "2006-01-02"

func ToSkillDTO(s *profile.Skill) SkillDTO {
	return SkillDTO{ID: s.ID, SkillName: s.Name, SkillType: string(s.Type)}
}

func ToAchievementDTO(a *profile.Achievement) AchievementDTO {
	dto := AchievementDTO{ID: a.ID, Title: a.Title, Description: a.Description}
	if a.Date != nil {
		d := a.Date.Format(dateLayout)
		dto.Date = &d
	}
	return dto
}

func ToProfileDTO(p *profile.Profile, own bool) ProfileDTO {
	return ProfileDTO{
		ID:           p.ID,
		Name:         p.Name,
		Department:   p.Department,
		Bio:          p.Bio,
		Email:        p.Email,
		Own:          own,
		Skills:       []SkillDTO{},
		Achievements: []AchievementDTO{},
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToProfileViewDTO(out *profileUC.GetProfileOutput) ProfileDTO {
	dto := ToProfileDTO(out.Profile, out.Own)
	dto.Skills = make([]SkillDTO, len(out.Skills))
	for i, s := range out.Skills {
		dto.Skills[i] = ToSkillDTO(s)
	}
	dto.Achievements = make([]AchievementDTO, len(out.Achievements))
	for i, a := range out.Achievements {
		dto.Achievements[i] = ToAchievementDTO(a)
	}
	return dto
}

// Directory DTOs
type StudentDTO struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Department   string     `json:"department"`
	Bio          *string    `json:"bio"`
	Status       string     `json:"status"`
	ConnectionID *uuid.UUID `json:"connection_id"`
}

type ConnectRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

type ConnectionDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ConnectedUserID uuid.UUID `json:"connected_user_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToStudentDTO(s directoryUC.Student) StudentDTO {
	return StudentDTO{
		ID:           s.Profile.ID,
		Name:         s.Profile.Name,
		Department:   s.Profile.Department,
		Bio:          s.Profile.Bio,
		Status:       string(s.Status),
		ConnectionID: s.ConnectionID,
	}
}

func ToConnectionDTO(c *connection.Connection) ConnectionDTO {
	return ConnectionDTO{
		ID:              c.ID,
		UserID:          c.UserID,
		ConnectedUserID: c.ConnectedUserID,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
	}
}

// Message DTOs
type SendMessageRequest struct {
	Message string `json:"message"`
}
