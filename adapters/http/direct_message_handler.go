package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dmUC "github.com/khoahotran/campus-connect/internal/application/usecase/directmessage"
	liveUC "github.com/khoahotran/campus-connect/internal/application/usecase/livefeed"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

// maxUploadSize bounds multipart chat uploads.
const maxUploadSize = 20 << 20

type DirectMessageHandler struct {
	useCase     *dmUC.DirectMessageUseCase
	liveUseCase *liveUC.LiveFeedUseCase
	logger      logger.Logger
}

func NewDirectMessageHandler(uc *dmUC.DirectMessageUseCase, live *liveUC.LiveFeedUseCase, log logger.Logger) *DirectMessageHandler {
	return &DirectMessageHandler{useCase: uc, liveUseCase: live, logger: log}
}

func (h *DirectMessageHandler) ListConnections(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	contacts, err := h.useCase.ExecuteListConnections(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *DirectMessageHandler) ListThread(c *gin.Context) {
	userID, peerID, ok := viewerAndPeer(c)
	if !ok {
		return
	}

	msgs, err := h.useCase.ExecuteListThread(c.Request.Context(), userID, peerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *DirectMessageHandler) Send(c *gin.Context) {
	userID, peerID, ok := viewerAndPeer(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	m, err := h.useCase.ExecuteSend(c.Request.Context(), dmUC.SendInput{
		SenderID:   userID,
		ReceiverID: peerID,
		Text:       req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *DirectMessageHandler) SendFile(c *gin.Context) {
	userID, peerID, ok := viewerAndPeer(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewValidation("A file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read uploaded file", err))
		return
	}
	defer file.Close()

	m, err := h.useCase.ExecuteSendFile(c.Request.Context(), dmUC.SendFileInput{
		SenderID:   userID,
		ReceiverID: peerID,
		File:       file,
		FileName:   fileHeader.Filename,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *DirectMessageHandler) Stream(c *gin.Context) {
	userID, peerID, ok := viewerAndPeer(c)
	if !ok {
		return
	}

	stream := newSSEStream(c)
	err := stream.serve(func(ctx context.Context, send func(string, any) error) error {
		return h.liveUseCase.ExecuteOpenDirect(ctx, userID, peerID, send)
	})
	finishStream(c, stream, err, h.logger)
}

func viewerAndPeer(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return uuid.Nil, uuid.Nil, false
	}
	peerID, err := uuid.Parse(c.Param("peerID"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid peer ID", err))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, peerID, true
}
