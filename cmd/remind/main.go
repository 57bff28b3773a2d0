package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/alinea-commerce/crm-service/internal/db"
	"github.com/alinea-commerce/crm-service/internal/order"
	"github.com/alinea-commerce/crm-service/internal/runlog"
)

const defaultLogPath = "/tmp/order_reminders_log.txt"

func main() {
	log.Println("Order Reminders Job - Starting")

	window := order.DefaultReminderWindow
	if daysStr := os.Getenv("REMINDER_WINDOW_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			window = time.Duration(days) * 24 * time.Hour
		}
	}

	logPath := os.Getenv("REMINDER_LOG_PATH")
	if logPath == "" {
		logPath = defaultLogPath
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	repo := order.NewRepository(database)
	reminderService := order.NewReminderService(repo, runlog.New(logPath), window)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := reminderService.SendOrderReminders(ctx, time.Now())
	if err != nil {
		log.Fatalf("Reminders failed: %v", err)
	}

	log.Printf("✓ Reminders completed successfully: %d orders logged", count)
	fmt.Println("Order reminders processed!")
}
