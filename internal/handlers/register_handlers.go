package handlers

import (
	"github.com/SscSPs/notes_app/cmd/docs"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouterDeps carries the infrastructure the routes need besides the services.
type RouterDeps struct {
	// Users backs the auth middleware's check that a token's subject still exists.
	Users portsrepo.UserReader
	// LoginLimiter throttles login attempts per client IP. Nil disables throttling.
	LoginLimiter *limiter.Limiter
	Posthog      *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/health", getHealth)

	if cfg.MetricsEnabled {
		r.Use(middleware.MetricsMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	cookies := newCookieJar(cfg)
	requireAuth := middleware.AuthMiddleware(services.TokenSigner, deps.Users)

	api := r.Group("/api", middleware.PosthogMiddleware(deps.Posthog))

	var loginGuard gin.HandlerFunc
	if deps.LoginLimiter != nil {
		loginGuard = middleware.RateLimit(deps.LoginLimiter)
	}
	registerAuthRoutes(api, newAuthHandler(services.Auth, services.User, cookies), requireAuth, loginGuard)
	registerGoogleOAuthRoutes(api, newGoogleOAuthHandler(services.GoogleOAuthHandler, services.Auth, cookies, cfg.FrontendURL))

	protected := api.Group("", requireAuth)
	registerUserRoutes(protected, services.User)
	registerNoteRoutes(protected, services.Note)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
