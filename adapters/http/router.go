package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/campus-connect/pkg/logger"
)

type Handlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Directory     *DirectoryHandler
	Chat          *ChatHandler
	DirectMessage *DirectMessageHandler
}

// NewRouter mounts every route under /api; all but health, sign-up and
// sign-in sit behind authMiddleware.
func NewRouter(h Handlers, authMiddleware gin.HandlerFunc, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/signin", h.Auth.SignIn)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/auth/session", h.Auth.Session)
			private.POST("/auth/signout", h.Auth.SignOut)

			profiles := private.Group("/profiles")
			{
				profiles.GET("/:id", h.Profile.GetProfile)
				profiles.PUT("/me", h.Profile.UpdateProfile)
				profiles.POST("/me/skills", h.Profile.AddSkill)
				profiles.DELETE("/me/skills/:id", h.Profile.RemoveSkill)
				profiles.POST("/me/achievements", h.Profile.AddAchievement)
				profiles.DELETE("/me/achievements/:id", h.Profile.RemoveAchievement)
			}

			private.GET("/students", h.Directory.ListStudents)
			private.POST("/connections", h.Directory.SendRequest)
			private.PUT("/connections/:id/accept", h.Directory.Accept)

			chat := private.Group("/campus-chat")
			{
				chat.GET("", h.Chat.ListMessages)
				chat.POST("", h.Chat.SendMessage)
				chat.GET("/stream", h.Chat.Stream)
			}

			messages := private.Group("/messages")
			{
				messages.GET("/connections", h.DirectMessage.ListConnections)
				messages.GET("/:peerID", h.DirectMessage.ListThread)
				messages.POST("/:peerID", h.DirectMessage.Send)
				messages.POST("/:peerID/files", h.DirectMessage.SendFile)
				messages.GET("/:peerID/stream", h.DirectMessage.Stream)
			}
		}
	}

	return router
}
