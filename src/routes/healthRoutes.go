package routes

import (
	"github.com/ergin84/ShareLand/src/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupHealthRoutes(router *gin.Engine, db *gorm.DB) {
	controller := controllers.NewHealthController(db)

	router.GET("/health", controller.Health)
	router.GET("/health/live", controller.Live)
	router.GET("/health/ready", controller.Ready)
	router.GET("/robots.txt", controller.Robots)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
