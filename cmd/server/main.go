package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/internal/infrastructure/datasources/postgres"
	"dragon-roster.backend/internal/infrastructure/datasources/sqlite"
	"dragon-roster.backend/internal/infrastructure/repositories"
	"dragon-roster.backend/internal/interfaces/http/handlers"
	"dragon-roster.backend/internal/interfaces/http/middleware"
	"dragon-roster.backend/internal/usecases"
	"dragon-roster.backend/pkg/jwt"
	"dragon-roster.backend/pkg/logger"
	"dragon-roster.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	migrateDB  = postgres.Migrate
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.IsSQLite() {
			return sqlite.Open(cfg.SQLitePath)
		}
		return postgres.Open(cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Info(ctx, "Redis disabled, idempotency keys are ignored")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if !cfg.Database.IsSQLite() && cfg.Database.MigrateOnStart {
		if err := migrateDB(ctx, cfg.Database); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database migrations applied")
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	personRepo := repositories.NewPersonRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	lineupRepo := repositories.NewLineupRepository(db)
	seatRepo := repositories.NewLineupSeatRepository(db)
	uow := repositories.NewUnitOfWork(db)

	personUsecase := usecases.NewPersonUsecase(personRepo)
	teamUsecase := usecases.NewTeamUsecase(teamRepo, cfg.Roster.DefaultMaxMembers)
	membershipUsecase := usecases.NewMembershipUsecase(membershipRepo, personRepo, teamRepo, uow)
	locationUsecase := usecases.NewLocationUsecase(locationRepo, teamRepo, trainingRepo, uow)
	trainingUsecase := usecases.NewTrainingUsecase(trainingRepo, teamRepo, locationRepo, uow)
	lineupUsecase := usecases.NewLineupUsecase(lineupRepo, trainingRepo, seatRepo, cfg.Roster)
	seatUsecase := usecases.NewLineupSeatUsecase(seatRepo, lineupRepo, personRepo, uow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(),
		personHandler:     handlers.NewPersonHandler(personUsecase),
		teamHandler:       handlers.NewTeamHandler(teamUsecase),
		membershipHandler: handlers.NewMembershipHandler(membershipUsecase),
		locationHandler:   handlers.NewLocationHandler(locationUsecase),
		trainingHandler:   handlers.NewTrainingHandler(trainingUsecase),
		lineupHandler:     handlers.NewLineupHandler(lineupUsecase),
		seatHandler:       handlers.NewLineupSeatHandler(seatUsecase),
		authMiddleware:    middleware.AuthMiddleware(jwtService, cfg.Auth.Required),
		idempotency:       middleware.IdempotencyMiddleware(),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	logger.Info(ctx, "Dragon roster backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Bool("auth_required", cfg.Auth.Required),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
