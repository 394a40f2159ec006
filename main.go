// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	"travel-agency/cmd"
	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/internal/wire"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/cache"
	"travel-agency/pkg/database"
	"travel-agency/pkg/imaging"
	"travel-agency/pkg/storage"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const cacheNamespace = "travel-agency"

func main() {
	createAdmin := flag.String("create-admin", "", "create an admin account as email:password and continue")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool(), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	infra := usecase.Infra{
		Storage:   initStorage(ctx, config, logger),
		Optimizer: imaging.NewOptimizer(config.Image.MaxWidth, config.Image.Quality, logger),
		Cache:     initCache(ctx, config, logger),
		JWT:       utils.NewJWTManager(config.JWT),
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, infra, db, config, logger)

	if *createAdmin != "" {
		seedAdmin(ctx, app.Service.User, *createAdmin, logger)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// initStorage falls back to a disabled store so the API still serves URL-only writes
func initStorage(ctx context.Context, config *utils.Config, logger *zap.Logger) storage.BlobStorage {
	if config.Storage.Endpoint == "" {
		logger.Warn("STORAGE_ENDPOINT not set, file uploads are disabled")
		return storage.NewDisabledStorage()
	}

	blobs, err := storage.NewMinioStorage(ctx, config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}
	logger.Info("Blob storage ready", zap.String("bucket", config.Storage.Bucket))
	return blobs
}

func initCache(ctx context.Context, config *utils.Config, logger *zap.Logger) cache.Cache {
	if config.Cache.RedisURL == "" {
		return cache.Noop{}
	}

	client, err := cache.Connect(ctx, config.Cache.RedisURL)
	if err != nil {
		// reads still work straight from postgres
		logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		return cache.Noop{}
	}
	logger.Info("Redis cache connected")
	return cache.NewRedisCache(client, cacheNamespace, config.Cache.TTL)
}

// seedAdmin handles -create-admin email:password; an existing email is only logged
func seedAdmin(ctx context.Context, users usecase.UserService, credentials string, logger *zap.Logger) {
	email, password, ok := strings.Cut(credentials, ":")
	if !ok || email == "" || password == "" {
		logger.Fatal("-create-admin expects email:password")
	}

	user, err := users.CreateUser(ctx, &request.CreateUserRequest{
		Email:     email,
		Password:  password,
		FirstName: "Admin",
		LastName:  "User",
		Role:      string(entity.RoleAdmin),
	})
	switch {
	case errors.Is(err, apperror.ErrConstraintViolation):
		logger.Info("Admin already exists", zap.String("email", email))
	case err != nil:
		logger.Fatal("Failed to create admin", zap.Error(err))
	default:
		logger.Info("Admin created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	}
}
