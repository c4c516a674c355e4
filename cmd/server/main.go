package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/server"
	"parms/internal/sticker"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func run() error {
	cfg := config.Load()
	database.Init(cfg)

	var cache sticker.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Printf("[WARN] redis unavailable, QR cache disabled: %v", err)
			_ = rdb.Close()
		} else {
			log.Println("connected to redis")
			cache = sticker.NewRedisCache(rdb)
			defer rdb.Close()
		}
	}

	app := server.New(cfg, sticker.NewQRGenerator(cache, cfg.QRCacheTTL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return serve(app, ":"+cfg.HTTPPort, quit)
}

// serve listens on addr until quit fires or listening fails.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return nil
}
