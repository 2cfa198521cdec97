package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/handlers"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/middleware"
)

// RegisterRoutes registers every HTTP route. Public endpoints go on the
// bare /api/v1 group; everything else sits behind the JWT middleware.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.BlogHandler.RegisterRoutes(api)
		appHandlers.KeywordHandler.RegisterRoutes(api)
	}

	protected := ginRouter.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.BlogHandler.RegisterProtectedRoutes(protected)
		appHandlers.KeywordHandler.RegisterProtectedRoutes(protected)
	}
}
