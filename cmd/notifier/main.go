package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"veg-meal-planner/internal/config"
	"veg-meal-planner/internal/database"
	"veg-meal-planner/internal/notify"
	"veg-meal-planner/internal/planner"

	"github.com/joho/godotenv"
)

// Intended to run as a non-overlapping scheduled job, one invocation per job type.
func main() {
	job := flag.String("job", "", "Which job to run: daily | weekly | monthly")
	flag.Parse()

	switch *job {
	case "daily", "weekly", "monthly":
	default:
		fmt.Println("❌ Invalid job type. Use: daily | weekly | monthly")
		os.Exit(1)
	}

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.Recipients) == 0 {
		log.Fatal("RECIPIENTS environment variable not set")
	}

	sender, err := notify.NewWhatsAppSender(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize WhatsApp sender: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := planner.NewPlanRepository(db.Pool)
	dispatcher := notify.NewDispatcher(planRepo, sender, cfg.Recipients)

	switch *job {
	case "daily":
		dispatcher.SendDaily(ctx)
	case "weekly":
		dispatcher.SendWeekly(ctx)
	case "monthly":
		dispatcher.SendMonthly(ctx)
	}
}
