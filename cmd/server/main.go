package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"vitacoin.app/rewardsplatform/internal/bootstrap"
	"vitacoin.app/rewardsplatform/internal/config"
	"vitacoin.app/rewardsplatform/internal/server"
	"vitacoin.app/rewardsplatform/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRewardRules(db); err != nil {
		log.Fatalf("failed to seed reward rules: %v", err)
	}
	if err := bootstrap.SeedTasks(db); err != nil {
		log.Fatalf("failed to seed tasks: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, db, redisClient)
	defer srv.Shutdown()

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when no URL is configured or the server is
// unreachable; rate limiting degrades to a no-op in that case.
func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL not set, rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, rate limiting disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, rate limiting disabled: %v", err)
		return nil
	}

	return client
}
