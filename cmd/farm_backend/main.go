package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/farm_management_app/internal/adapters/export"
	"github.com/SscSPs/farm_management_app/internal/adapters/lock"
	"github.com/SscSPs/farm_management_app/internal/core/services"
	"github.com/SscSPs/farm_management_app/internal/handlers"
	"github.com/SscSPs/farm_management_app/internal/middleware"
	"github.com/SscSPs/farm_management_app/internal/platform/config"
	"github.com/SscSPs/farm_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/farm_management_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Farm Management Backend API
// @version 1.0
// @description Monthly period close (cloture) of a farm ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger)
	if err != nil {
		logger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	clotureOptions := []services.ClotureServiceOption{
		services.WithExporter(export.NewExcelExporter()),
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("Failed to reach Redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		clotureOptions = append(clotureOptions, services.WithLocker(lock.NewRedisLocker(rdb, cfg.LockTTL)))
		logger.Info("Closure transitions serialized through Redis", slog.String("addr", cfg.RedisAddr))
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), clotureOptions...)

	if cfg.BootstrapAdminEmail != "" {
		admin, created, err := serviceContainer.User.BootstrapAdmin(ctx,
			cfg.BootstrapOrganisation, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		if err != nil {
			logger.Error("Failed to bootstrap admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if created {
			logger.Info("Bootstrap organisation and admin created",
				slog.String("user_id", admin.UserID), slog.String("organisation_id", admin.OrganisationID))
		}
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRate)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE", slog.String("rate", cfg.LoginRate), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.SecureHeaders(cfg.IsProduction))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
