package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/ppc-intelligence/internal/api"
	"github.com/ignite/ppc-intelligence/internal/config"
	"github.com/ignite/ppc-intelligence/internal/export"
	"github.com/ignite/ppc-intelligence/internal/storage"
)

// checkPortAvailable verifies that the target port is not already in use,
// which otherwise surfaces as a confusing bind error after full startup.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("PPC Intelligence API server starting")

	configPath := "config/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	var store *storage.Store
	switch cfg.Storage.Type {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Storage.RedisAddr, err)
		}
		cancel()
		store = storage.NewRedisStore(client, cfg.Storage.KeyPrefix)
		log.Printf("[storage] using Redis at %s", cfg.Storage.RedisAddr)
	default:
		store = storage.NewMemoryStore()
		log.Println("[storage] using in-memory account store")
	}

	handlers := api.NewHandlers(store, cfg)

	if cfg.Export.S3.Enabled {
		delivery, err := export.NewS3Delivery(context.Background(),
			cfg.Export.S3.Bucket, cfg.Export.S3.Region, cfg.Export.S3.Profile, cfg.Export.S3.Prefix)
		if err != nil {
			log.Fatalf("Failed to initialize S3 export delivery: %v", err)
		}
		handlers.SetS3Delivery(delivery)
		log.Printf("[export] S3 delivery enabled, bucket=%s", cfg.Export.S3.Bucket)
	}

	server := api.NewServer(handlers)
	addr := fmt.Sprintf("%s:%d", host, port)

	go func() {
		log.Printf("Listening on http://%s", addr)
		if err := server.ListenAndServe(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
