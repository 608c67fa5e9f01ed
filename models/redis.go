package models

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the catalog response cache and OTP login codes. It stays
// nil when Redis is unreachable; callers check for nil and fall back to the
// database (OTP login returns 503 instead).
var RedisClient *redis.Client

func InitRedis() {
	opt, err := redisOptions()
	if err != nil {
		log.Println("Invalid Redis configuration:", err)
		log.Println("Caching and OTP login are disabled")
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable:", err)
		log.Println("Caching and OTP login are disabled")
		return
	}

	RedisClient = client
	log.Println("Redis connected")
}

func redisOptions() (*redis.Options, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return redis.ParseURL(url)
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}
	return &redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}, nil
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
