package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the engine with recovery, access logging and CORS for the
// static site.
func NewRouter(allowedOrigins []string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// SetupRoutes registers the public routes. The inquiry read-back route is
// only registered when inquiriesToken is set, and then requires it.
func SetupRoutes(router *gin.Engine, handler *Handler, inquiriesToken string) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/featured", handler.GetFeatured)
		api.GET("/categories/:category", handler.GetCategory)
		api.GET("/detail", handler.GetDetail)
		api.GET("/images/:propertyId", handler.GetImages)
		api.POST("/contact", handler.SubmitContact)
	}

	if inquiriesToken != "" {
		api.GET("/inquiries", RequireToken(inquiriesToken), handler.GetInquiries)
	}
}
