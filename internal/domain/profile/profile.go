package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Bio        *string   `json:"bio"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SkillType string

const (
	SkillTechnical SkillType = "technical"
	SkillSoft      SkillType = "soft"
)

type Skill struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"skill_name"`
	Type      SkillType `json:"skill_type"`
	CreatedAt time.Time `json:"created_at"`
}

type Achievement struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
}

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInvalidSkillType    = errors.New("skill type must be technical or soft")
)

// ParseSkillType defaults an empty value to technical.
func ParseSkillType(s string) (SkillType, error) {
	switch SkillType(s) {
	case "":
		return SkillTechnical, nil
	case SkillTechnical, SkillSoft:
		return SkillType(s), nil
	}
	return "", ErrInvalidSkillType
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// ListExcept returns every profile but the given one, ordered by name.
	ListExcept(ctx context.Context, id uuid.UUID) ([]*Profile, error)
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	Update(ctx context.Context, p *Profile) error
}

type SkillRepository interface {
	Save(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Skill, error)
}

type AchievementRepository interface {
	Save(ctx context.Context, a *Achievement) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	// ListByUser orders by date, newest first; undated entries last.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Achievement, error)
}
