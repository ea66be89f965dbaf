package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	campusUC "github.com/khoahotran/campus-connect/internal/application/usecase/campuschat"
	liveUC "github.com/khoahotran/campus-connect/internal/application/usecase/livefeed"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *campusUC.CampusChatUseCase
	liveUseCase *liveUC.LiveFeedUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *campusUC.CampusChatUseCase, live *liveUC.LiveFeedUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		liveUseCase: live,
		logger:      log,
	}
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	msgs, err := h.chatUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	m, err := h.chatUseCase.ExecuteSend(c.Request.Context(), campusUC.SendInput{
		UserID: userID,
		Text:   req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ChatHandler) Stream(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	stream := newSSEStream(c)
	err := stream.serve(func(ctx context.Context, send func(string, any) error) error {
		return h.liveUseCase.ExecuteOpenCampus(ctx, userID, send)
	})
	finishStream(c, stream, err, h.logger)
}

// finishStream reports err as JSON if nothing was streamed yet, otherwise
// just logs it; a client disconnect is not an error.
func finishStream(c *gin.Context, stream *sseStream, err error, log logger.Logger) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	if !stream.Started() {
		c.Error(err)
		return
	}
	log.Warn("Live stream ended", zap.String("path", c.FullPath()), zap.Error(err))
}
