package v1

import (
	"net/http"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AdminUC domain.AdminUsecase
	Config  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
