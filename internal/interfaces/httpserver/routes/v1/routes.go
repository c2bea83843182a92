package v1

import (
	"github.com/gin-gonic/gin"

	"dashboard-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerWidgetRoutes(group, r.handlers.Widget, r.handlers.Events)
	registerChatRoutes(group, r.handlers.Chat)
	registerIntegrationRoutes(group, r.handlers.Integration)
}
