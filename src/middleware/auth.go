package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

// AuthMiddleware validates the Bearer token and stores the acting user's id
// and staff flag in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			ctx.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			ctx.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			ctx.Abort()
			return
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				ctx.Abort()
				return
			}
		}

		if id, ok := claims["id"].(float64); ok {
			ctx.Set("userId", int(id))
		}
		if staff, ok := claims["staff"].(bool); ok {
			ctx.Set("isStaff", staff)
		}
		ctx.Next()
	}
}

// StaffOnly aborts requests whose token does not carry the staff flag. Must be
// registered after AuthMiddleware.
func StaffOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !IsStaff(ctx) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or 0 when anonymous.
func CurrentUserID(ctx *gin.Context) int {
	if v, ok := ctx.Get("userId"); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

func IsStaff(ctx *gin.Context) bool {
	if v, ok := ctx.Get("isStaff"); ok {
		if staff, ok := v.(bool); ok {
			return staff
		}
	}
	return false
}
