package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gamevault/backend/internal/config"
	"gamevault/backend/internal/httpserver"
	"gamevault/backend/internal/infrastructure/cache"
	"gamevault/backend/internal/infrastructure/postgres"
	"gamevault/backend/internal/infrastructure/token"
	"gamevault/backend/internal/metrics"
	authusecase "gamevault/backend/internal/usecase/auth"
	gameusecase "gamevault/backend/internal/usecase/game"
	libraryusecase "gamevault/backend/internal/usecase/library"
	roleusecase "gamevault/backend/internal/usecase/role"
	userusecase "gamevault/backend/internal/usecase/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	codec, err := token.NewCodec(token.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}

	var gamesCache gameusecase.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(rootCtx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		gamesCache = cache.NewGames(client, cfg.CacheTTL)
		logger.Info("catalog cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	userRepo := postgres.NewUserRepository(db.Pool)
	roleRepo := postgres.NewRoleRepository(db.Pool)
	gameRepo := postgres.NewGameRepository(db.Pool)
	libraryRepo := postgres.NewLibraryRepository(db.Pool)

	services := httpserver.Services{
		Auth:    authusecase.NewService(userRepo, codec, logger),
		User:    userusecase.NewService(userRepo, roleRepo, logger),
		Role:    roleusecase.NewService(roleRepo, logger),
		Game:    gameusecase.NewService(gameRepo, gamesCache, logger),
		Library: libraryusecase.NewService(libraryRepo, userRepo, gameRepo, logger),
	}

	server := httpserver.NewServer(cfg, logger, metrics.NewHTTP("gamevault", prometheus.DefaultRegisterer), services)
	logger.Info("HTTP server listening", zap.String("addr", server.Addr()))

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("graceful shutdown completed")
	}
}
