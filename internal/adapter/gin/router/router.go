package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-crud-service/api/swagger"
	"user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/middleware"
	"user-crud-service/pkg/logger"
)

// SwaggerDocPath is where the embedded OpenAPI document is served
const SwaggerDocPath = "/swagger/doc.json"

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, log *zap.Logger) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(cors.Default())

	router.GET("/hello", userHandler.Hello)
	router.GET("/health", userHandler.Health)

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
	}

	swaggerUI := httpSwagger.Handler(httpSwagger.URL(SwaggerDocPath))
	router.GET("/swagger/*any", func(c *gin.Context) {
		// The UI's own doc.json lookup goes to the swag registry, which is empty here
		if c.Param("any") == "/doc.json" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Document)
			return
		}
		swaggerUI.ServeHTTP(c.Writer, c.Request)
	})

	log.Info("Swagger UI available", zap.String("path", "/swagger/index.html"))

	return router
}
