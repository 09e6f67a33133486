package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var trackedPrefixes = []string{
	"/research",
	"/site",
	"/archaeological-evidence",
	"/browser",
}

// AccessLogMiddleware records a page view for every successful authenticated
// GET on the tracked sections. Logging failures never affect the response.
func AccessLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if ctx.Request.Method != http.MethodGet || ctx.Writer.Status() != http.StatusOK {
			return
		}
		userID := CurrentUserID(ctx)
		if userID == 0 {
			return
		}

		path := ctx.Request.URL.Path
		tracked := false
		for _, prefix := range trackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				tracked = true
				break
			}
		}
		if !tracked {
			return
		}

		entry := models.AccessLog{
			UserID:    &userID,
			Page:      path,
			ViewName:  ctx.FullPath(),
			IPAddress: utils.ClientIP(ctx),
			UserAgent: utils.UserAgent(ctx),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("access log write failed: %v", err)
		}
	}
}
