package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns panics into a JSON 500. The stack trace always goes
// to the server log, and is echoed in the response body only when DEBUG=true.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Printf("panic recovered: %v\n%s", r, stack)
				body := gin.H{"error": "Internal server error"}
				if os.Getenv("DEBUG") == "true" {
					body["detail"] = fmt.Sprintf("%v", r)
					body["stack"] = string(stack)
				}
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		ctx.Next()
	}
}
