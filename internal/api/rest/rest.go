package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the router
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	tile := router.Group("/tile")
	{
		tile.POST("/lock", handler.LockTile)
		tile.POST("/confirm", handler.ConfirmTile)
	}

	router.GET("/tiles", handler.GetTilesInView)
	router.GET("/tiles/user/:address", handler.GetUserTiles)

	router.GET("/metadata/:cellId", handler.GetTileMetadata)
	router.GET("/images/:name", handler.GetTileImage)
	router.GET("/nfts/:address", handler.GetAccountNFTs)

	cron := router.Group("/cron")
	{
		cron.POST("/process-escrows", handler.ProcessEscrows)
	}
}
