// Package http wires the REST API consumed by the web frontend.
package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/adapter/http/handler"
	"github.com/tharun69CS/EcoFinds/internal/adapter/http/middleware"
	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
	Tracing     bool
}

// NewRouter builds the gin engine with the route table of the marketplace
// API. Reads on listings are public; every mutation goes through the
// identity resolver.
func NewRouter(
	cfg RouterConfig,
	authHandler *handler.AuthHandler,
	listingHandler *handler.ListingHandler,
	uploadHandler *handler.UploadHandler,
	resolver *auth.Resolver,
	log *logger.Logger,
) *gin.Engine {
	handler.InitValidator()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	if cfg.Tracing {
		router.Use(middleware.Tracing(cfg.ServiceName))
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	requireIdentity := middleware.RequireIdentity(resolver, log)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireIdentity, authHandler.Me)
		}

		products := api.Group("/products")
		{
			products.GET("", listingHandler.List)
			products.GET("/:id", listingHandler.Get)
			products.POST("", requireIdentity, listingHandler.Create)
			products.PUT("/:id", requireIdentity, listingHandler.Update)
			products.DELETE("/:id", requireIdentity, listingHandler.Delete)
		}

		api.POST("/upload", requireIdentity, uploadHandler.Upload)
	}

	return router
}
