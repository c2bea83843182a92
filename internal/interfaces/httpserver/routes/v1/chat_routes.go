package v1

import (
	"github.com/gin-gonic/gin"

	"dashboard-server/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat/sessions", handler.CreateSession)
	router.GET("/chat/sessions/:id", handler.GetSession)
	router.POST("/chat/sessions/:id/edit", handler.SetEdit)
	router.DELETE("/chat/sessions/:id/edit", handler.ClearEdit)
	router.POST("/chat/sessions/:id/messages", handler.PostMessage)
	router.POST("/chat/sessions/:id/contents", handler.RecordContent)
	router.POST("/chat/sessions/:id/summary", handler.Summarize)
}
