package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFiles removes a generated file once it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		err := os.Remove(filePath)
		if err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("expired file %s deleted", filePath)
	}
	return nil
}

// CleanupGeocodeCache drops cached geocoding results so long-lived entries
// cannot drift from the upstream service.
func CleanupGeocodeCache(redisClient *redis.Client) error {
	ctx := context.Background()
	iter := redisClient.Scan(ctx, 0, "geocode:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("error deleting cache key %s: %v", iter.Val(), err)
		}
	}
	return iter.Err()
}

// CleanupAllExpired removes expired template/report files and stale geocode
// cache entries.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir("./public/files")
	if err != nil {
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := fmt.Sprintf("./public/files/%s", file.Name())
		if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
			log.Printf("error cleaning up file: %v", err)
		}
	}

	if err := CleanupGeocodeCache(redisClient); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries and logs
// error messages on failure.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries", retries)
		}
	})

	c.Start()

	// Keep the goroutine alive so the cron jobs execute
	select {}
}
