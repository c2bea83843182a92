package v1

import (
	"github.com/gin-gonic/gin"

	"dashboard-server/internal/interfaces/httpserver/handlers"
)

func registerIntegrationRoutes(router gin.IRoutes, handler *handlers.IntegrationHandler) {
	router.POST("/speech", handler.Speech)
	router.POST("/salesforce/query", handler.SalesforceQuery)
	router.POST("/pica", handler.PicaGenerate)
}
