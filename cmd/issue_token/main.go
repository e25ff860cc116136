package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/kimurazver67/sport-transformation-app-sub000/config"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/database"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
)

// issue_token prints a bearer token for a Telegram user, creating the user
// if needed. Meant for local testing of the API.
func main() {
	telegramID := flag.Int64("telegram-id", 0, "Telegram user id")
	username := flag.String("username", "", "Telegram username")
	firstName := flag.String("first-name", "", "First name")
	flag.Parse()

	if *telegramID <= 0 {
		log.Fatal("-telegram-id is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	user, err := service.NewUserService(db).EnsureTelegramUser(context.Background(), *telegramID, *username, *firstName)
	if err != nil {
		log.Fatalf("failed to load user: %v", err)
	}

	token, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(user)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Printf("user_id: %s\n", user.ID)
	fmt.Println(token)
}
