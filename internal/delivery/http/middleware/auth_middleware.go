package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const hrRole = "hr"

// AuthMiddleware validates the HS256 bearer token and requires the hr
// role claim.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if role != hrRole {
			response.Error(c, http.StatusForbidden, "HR role required", nil)
			c.Abort()
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("UserID", sub)
		}

		c.Next()
	}
}
