package controllers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health reports overall status: database reachability plus a small
// runtime memory snapshot.
func (c *HealthController) Health(ctx *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	memory := gin.H{
		"alloc_mb":       mem.Alloc / 1024 / 1024,
		"sys_mb":         mem.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
	}

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": err.Error(),
			"memory":   memory,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok", "memory": memory})
}

func (c *HealthController) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready checks the database connection before reporting ready.
func (c *HealthController) Ready(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (c *HealthController) Robots(ctx *gin.Context) {
	ctx.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
