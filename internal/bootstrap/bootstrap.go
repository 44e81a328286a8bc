// Package bootstrap wires configuration, database, storage, services and the
// HTTP router together for the api binary.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/noteshub/internal/app/controllers"
	"github.com/oguzk/noteshub/internal/app/migrations"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/app/routes"
	"github.com/oguzk/noteshub/internal/app/services"
	"github.com/oguzk/noteshub/internal/config"
	"github.com/oguzk/noteshub/internal/db"
	"github.com/oguzk/noteshub/internal/pkg/auth"
	"github.com/oguzk/noteshub/internal/pkg/filestorage"
	"github.com/oguzk/noteshub/internal/pkg/helpers"
	"github.com/oguzk/noteshub/internal/pkg/logger"
	"github.com/oguzk/noteshub/internal/seed"
)

// Dependencies holds everything the server needs at runtime.
type Dependencies struct {
	Config     *config.Config
	DB         *db.PostgresDB
	Repos      *repositories.Repositories
	JWTService *auth.JWTService
	Storage    filestorage.FileStorage
	Router     *gin.Engine
}

// LoadConfigAndSetupLogger loads configuration and applies the logging
// settings.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "console",
	})

	return cfg, nil
}

// SetupDatabase connects to postgres, runs migrations and seeds the admin
// account.
func SetupDatabase(cfg *config.Config, migrationsDir string) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	userRepo := repositories.NewUserRepository(database.Pool)
	if err := seed.EnsureAdminUser(ctx, userRepo, cfg); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// BuildDependencies constructs repositories, services, controllers and the
// router.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, err
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 30*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	repos := repositories.NewRepositories(database.Pool)

	authService := services.NewAuthService(repos.User, repos.Token, jwtService)
	noteService := services.NewNoteService(repos.Note, storage)

	router := setupRouter(cfg)
	routes.SetupRoutes(router, routes.Controllers{
		Auth: controllers.NewAuthController(authService, repos.User),
		Note: controllers.NewNoteController(noteService, repos.User),
	}, jwtService)

	return &Dependencies{
		Config:     cfg,
		DB:         database,
		Repos:      repos,
		JWTService: jwtService,
		Storage:    storage,
		Router:     router,
	}, nil
}

func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 16 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
