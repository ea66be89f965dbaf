package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/campus-connect/internal/application/usecase/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetProfile serves /profiles/:id where id is a user id or "me".
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	profileID := userID
	if raw := c.Param("id"); raw != "me" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid profile ID", err))
			return
		}
		profileID = id
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{
		ViewerID:  userID,
		ProfileID: profileID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileViewDTO(output))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	p, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		UserID:     userID,
		Name:       req.Name,
		Department: req.Department,
		Bio:        req.Bio,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p, true))
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}

	skill, err := h.profileUseCase.ExecuteAddSkill(c.Request.Context(), profileUC.AddSkillInput{
		UserID: userID,
		Name:   req.SkillName,
		Type:   req.SkillType,
	})
	if err != nil {
		c.Error(err)
		return
	}
	if skill == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, ToSkillDTO(skill))
}

func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	skillID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill ID", err))
		return
	}

	if err := h.profileUseCase.ExecuteRemoveSkill(c.Request.Context(), userID, skillID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) AddAchievement(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for achievement", err))
		return
	}

	var date *time.Time
	if raw := strings.TrimSpace(req.Date); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.Error(apperror.NewValidation("Date must be formatted as YYYY-MM-DD", err))
			return
		}
		date = &d
	}

	a, err := h.profileUseCase.ExecuteAddAchievement(c.Request.Context(), profileUC.AddAchievementInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		c.Error(err)
		return
	}
	if a == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, ToAchievementDTO(a))
}

func (h *ProfileHandler) RemoveAchievement(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	achievementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid achievement ID", err))
		return
	}

	if err := h.profileUseCase.ExecuteRemoveAchievement(c.Request.Context(), userID, achievementID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
