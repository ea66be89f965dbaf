package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryUC "github.com/khoahotran/campus-connect/internal/application/usecase/directory"
	"github.com/khoahotran/campus-connect/pkg/apperror"
)

type DirectoryHandler struct {
	useCase *directoryUC.DirectoryUseCase
}

func NewDirectoryHandler(uc *directoryUC.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{useCase: uc}
}

func (h *DirectoryHandler) ListStudents(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	students, err := h.useCase.ExecuteListStudents(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]StudentDTO, len(students))
	for i, s := range students {
		dtos[i] = ToStudentDTO(s)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *DirectoryHandler) SendRequest(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("student_id is required", err))
		return
	}

	conn, err := h.useCase.ExecuteSendRequest(c.Request.Context(), userID, req.StudentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToConnectionDTO(conn))
}

func (h *DirectoryHandler) Accept(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid connection ID", err))
		return
	}

	conn, err := h.useCase.ExecuteAccept(c.Request.Context(), userID, connID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToConnectionDTO(conn))
}
