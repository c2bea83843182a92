package v1

import (
	"github.com/gin-gonic/gin"

	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/infrastructure/realtime"
	"dashboard-server/internal/interfaces/httpserver/handlers"
)

func registerWidgetRoutes(router gin.IRoutes, handler *handlers.WidgetHandler, events *realtime.WebSocketHandler) {
	// The events route must precede :id so gin does not treat "events" as an id.
	router.GET("/widgets/events", func(c *gin.Context) {
		events.Serve(auth.OwnerID(c), c.Writer, c.Request)
	})

	router.GET("/widgets", handler.List)
	router.GET("/widgets/:id", handler.Get)
	router.POST("/widgets", handler.Create)
	router.PATCH("/widgets/:id", handler.Update)
	router.DELETE("/widgets/:id", handler.Delete)
}
