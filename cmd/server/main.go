package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/bookcommunity/internal/bootstrap"
	"anoa.com/bookcommunity/internal/config"
	"anoa.com/bookcommunity/internal/server"
	"anoa.com/bookcommunity/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	setupLogger(cfg)

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
		Debug:    !cfg.IsProduction(),
	})
	if err != nil {
		fatal("database connection failed", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		fatal("migration failed", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		fatal("failed to seed roles", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			fatal("failed to seed admin user", err)
		}
	}

	ctx := context.Background()
	redisClient := connectRedis(ctx, cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.NewServer(ctx, cfg, db, redisClient)
	if err != nil {
		fatal("failed to build server", err)
	}

	go func() {
		if err := srv.Run(":" + cfg.Port); err != nil {
			fatal("server exited with error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}

// connectRedis returns nil when Redis is not configured or unreachable;
// cooldowns and the moderation feed are then disabled.
func connectRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		slog.Warn("REDIS_URL not set, comment cooldown and moderation feed are disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid REDIS_URL, continuing without redis", slog.Any("error", err))
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, continuing without redis", slog.Any("error", err))
		_ = client.Close()
		return nil
	}

	slog.Info("redis connected", slog.String("addr", opts.Addr))
	return client
}

func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
