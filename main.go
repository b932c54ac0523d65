package main

import (
	"log"
	"strings"
	"time"

	"course-gate/config"
	"course-gate/database"
	authapi "course-gate/internal/api/auth"
	"course-gate/internal/api/billing"
	coursesapi "course-gate/internal/api/courses"
	stripewebhooks "course-gate/internal/api/stripewebhook"
	"course-gate/internal/api/users"
	routes "course-gate/internal/app/http"
	"course-gate/internal/app/http/middleware"
	"course-gate/internal/app/logger"
	"course-gate/internal/content"
	"course-gate/internal/entitlement"
	"course-gate/internal/identity"
	"course-gate/internal/infra/session"
	"course-gate/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(config.APP_ENV)
	defer func() { _ = zl.Sync() }()

	if !config.DotenvLoaded {
		zl.Info("No .env file found. Using system environment variables.")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(config.DB_URL, zl)
	if err != nil {
		zl.Fatal("Failed to open database", zap.Error(err))
	}
	st := store.New(db)

	identities := identity.NewService(st, session.NewIssuer(config.JWT_SECRET, config.SESSION_TTL), zl)
	reader := content.NewService(st, st, zl)
	entitlements := entitlement.NewService(st, zl)

	var google *authapi.GoogleConfig
	if config.GOOGLE_CLIENT_ID != "" {
		google = &authapi.GoogleConfig{
			ClientID:         config.GOOGLE_CLIENT_ID,
			ClientSecret:     config.GOOGLE_CLIENT_SECRET,
			RedirectURL:      config.GOOGLE_REDIRECT_URL,
			FrontendRedirect: config.GOOGLE_FRONTEND_REDIRECT,
		}
	} else {
		zl.Warn("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	if config.STRIPE_WEBHOOK_SECRET == "" {
		zl.Warn("STRIPE_WEBHOOK_SECRET not set, purchases will not be recorded")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zl))

	// CORS before routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Resolver: identities,
		Auth:     authapi.NewHandler(identities, google, zl),
		Courses:  coursesapi.NewHandler(reader, entitlements, zl),
		Users:    users.NewHandler(entitlements, zl),
		Billing:  billing.NewHandler(entitlements, zl),
		Webhook:  stripewebhooks.NewHandler(config.STRIPE_WEBHOOK_SECRET, entitlements, zl),
	}, zl)

	zl.Info("Server starting", zap.String("port", config.PORT), zap.String("env", config.APP_ENV))
	if err := r.Run(":" + config.PORT); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}
