package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP prefers the first address in X-Forwarded-For, falling back to the
// peer address, so logs stay meaningful behind the reverse proxy.
func ClientIP(ctx *gin.Context) string {
	if fwd := ctx.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return ctx.ClientIP()
}

// UserAgent returns the request's User-Agent capped at 500 characters.
func UserAgent(ctx *gin.Context) string {
	ua := ctx.GetHeader("User-Agent")
	if len(ua) > 500 {
		ua = ua[:500]
	}
	return ua
}
