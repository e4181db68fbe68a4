package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/infra/config"
	"github.com/arklim/social-platform-api/internal/transport/http/handlers"
	"github.com/arklim/social-platform-api/internal/transport/http/middleware"
	"github.com/arklim/social-platform-api/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth          *usecase.AuthService
	Users         *usecase.UserService
	PasswordReset *usecase.PasswordResetService
	Tweets        *usecase.TweetService
	Comments      *usecase.CommentService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	requireAuth := middleware.RequireAuth(deps.Services.Auth)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := handlers.NewUserHandler(
		deps.Services.Users,
		deps.Services.Auth,
		deps.Services.PasswordReset,
		deps.Config.Pagination,
	)
	userHandler.RegisterRoutes(r.Group("/users"), requireAuth, requireAdmin)

	tweetHandler := handlers.NewTweetHandler(deps.Services.Tweets, deps.Services.Comments, deps.Config.Pagination)
	tweetHandler.RegisterRoutes(r.Group("/tweets"), requireAuth)

	commentHandler := handlers.NewCommentHandler(deps.Services.Comments)
	commentHandler.RegisterRoutes(r.Group("/comments"), requireAuth)

	return r
}
