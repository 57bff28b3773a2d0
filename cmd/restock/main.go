package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/alinea-commerce/crm-service/internal/db"
	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/product"
	"github.com/alinea-commerce/crm-service/internal/runlog"
	"github.com/alinea-commerce/crm-service/internal/telemetry"
)

const (
	defaultLogPath = "/tmp/low_stock_updates_log.txt"
	// Restock log lines use a day-first timestamp, e.g. 30/08/2026-14:05:09
	timestampLayout = "02/01/2006-15:04:05"
)

func main() {
	log.Println("Low Stock Restock Job - Starting")

	threshold := intEnv("RESTOCK_THRESHOLD", product.DefaultLowStockThreshold)
	increment := intEnv("RESTOCK_INCREMENT", product.DefaultRestockIncrement)

	logPath := os.Getenv("RESTOCK_LOG_PATH")
	if logPath == "" {
		logPath = defaultLogPath
	}

	telemetryProvider, err := telemetry.InitProvider(context.Background(), telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize custom metrics: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, restock event will not be published: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	repo := product.NewRepository(database)
	service := product.NewService(repo, publisher)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	timestamp := time.Now().Format(timestampLayout)
	runLog := runlog.New(logPath)

	result, err := service.RestockLowStock(ctx, threshold, increment)
	if err != nil {
		if logErr := runLog.Appendf("[%s] ERROR running restock: %v", timestamp, err); logErr != nil {
			log.Printf("Warning: failed to write restock log: %v", logErr)
		}
		log.Fatalf("Restock failed: %v", err)
	}

	if err := runLog.Appendf("[%s] %s", timestamp, result.Message); err != nil {
		log.Fatalf("Failed to write restock log: %v", err)
	}
	for _, p := range result.Products {
		if err := runLog.Appendf("    - %s: stock=%d", p.Name, p.Stock); err != nil {
			log.Fatalf("Failed to write restock log: %v", err)
		}
	}

	if metrics != nil {
		metrics.RecordProductsRestocked(ctx, len(result.Products))
	}
	if telemetryProvider != nil {
		flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
		telemetryProvider.Shutdown(flushCtx)
		cancelFlush()
	}

	log.Printf("✓ Restock completed successfully: %d products updated", len(result.Products))
	log.Println("Restock Job - Finished")
}

func intEnv(name string, fallback int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
