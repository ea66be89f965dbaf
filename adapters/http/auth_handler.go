package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/campus-connect/internal/application/usecase/auth"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type AuthHandler struct {
	signUpUseCase  *authUC.SignUpUseCase
	loginUseCase   *authUC.LoginUseCase
	sessionUseCase *authUC.SessionUseCase
	logger         logger.Logger
}

func NewAuthHandler(signUpUC *authUC.SignUpUseCase, loginUC *authUC.LoginUseCase, sessionUC *authUC.SessionUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		signUpUseCase:  signUpUC,
		loginUseCase:   loginUC,
		sessionUseCase: sessionUC,
		logger:         log,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for sign up", err))
		return
	}

	output, err := h.signUpUseCase.Execute(c.Request.Context(), authUC.SignUpInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Department: req.Department,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToAuthResponse(output))
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for sign in", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToAuthResponse(output))
}

func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("claims not found in context", nil))
		return
	}

	session, err := h.sessionUseCase.Current(c.Request.Context(), claims)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionResponse(session))
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("claims not found in context", nil))
		return
	}

	if err := h.sessionUseCase.SignOut(c.Request.Context(), claims); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
