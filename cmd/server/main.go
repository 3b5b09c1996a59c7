package main

import (
	"log"
	"time"

	"qahwaan-system/config"
	"qahwaan-system/internal/database"
	"qahwaan-system/internal/server"
	"qahwaan-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	r := server.New(server.Deps{
		DB:       db,
		Redis:    redisClient,
		TokenTTL: time.Duration(cfg.Auth.TokenTTL) * time.Hour,
	})

	log.Printf("Starting server on %s", cfg.HTTP.Addr)
	if err := r.Run(cfg.HTTP.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
