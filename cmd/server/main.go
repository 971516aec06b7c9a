package main

import (
	"context" // context package is needed for the Redis ping
	"log"     // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/wangruoshui6/meal-accounting-backend/internal/api"     // API handlers and routes
	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"    // Token issuing and verification
	"github.com/wangruoshui6/meal-accounting-backend/internal/config"  // Configuration loading
	"github.com/wangruoshui6/meal-accounting-backend/internal/service" // Business services
	"github.com/wangruoshui6/meal-accounting-backend/internal/utils"   // Cache helper
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the auth layer: session cache + token issuer/verifier
	sessions := auth.NewSessionCache(redisClient)
	authn := auth.NewAuthenticator(cfg.JWTSecret, sessions)

	// Wire the business services
	settingCache := utils.NewCache(redisClient, auth.SessionTTL)
	deps := api.Deps{
		Authn:    authn,
		Users:    service.NewUserService(db, authn),
		Records:  service.NewRecordService(db),
		Diaries:  service.NewDiaryService(db),
		Settings: service.NewSettingService(db, settingCache),
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, deps) // Register all endpoints

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
