package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared client used for dashboard stat caching. It may be nil
// when no server is reachable; callers must degrade to uncached reads.
var Redis *redis.Client

// InitRedis connects to Redis using REDIS_ADDR (or REDIS_HOST/REDIS_PORT),
// REDIS_PASSWORD and REDIS_DB. A failed ping leaves Redis nil.
func InitRedis() {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	addr := os.Getenv("REDIS_ADDR")
	if host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not reachable at %s, stats caching disabled: %v", addr, err)
		return
	}

	Redis = client
	log.Println("Redis connected successfully")
}
