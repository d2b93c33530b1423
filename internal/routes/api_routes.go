package routes

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every route that requires authentication.
func RegisterAPIRoutes(api *gin.RouterGroup, d Deps) {
	contracts := api.Group("/contracts")
	{
		contracts.GET("", d.Contracts.ListContracts)
		contracts.POST("", d.Contracts.CreateContract)
		contracts.GET("/export", d.Contracts.ExportContracts)
		contracts.GET("/:id", d.Contracts.GetContract)
		contracts.PUT("/:id", d.Contracts.UpdateContract)
		contracts.DELETE("/:id", d.Contracts.DeleteContract)
		contracts.GET("/:id/pdf", d.Sync.DownloadContractPDF)
	}

	integrations := api.Group("/integrations")
	{
		integrations.POST("/google/sync", d.Sync.SyncContract)
	}
}
