package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/alinea-commerce/crm-service/internal/customer"
	"github.com/alinea-commerce/crm-service/internal/db"
	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/runlog"
	"github.com/alinea-commerce/crm-service/internal/telemetry"
)

const defaultLogPath = "/tmp/customer_cleanup_log.txt"

func main() {
	log.Println("Inactive Customer Purge Job - Starting")

	retention := customer.DefaultRetention
	if daysStr := os.Getenv("PURGE_RETENTION_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			retention = time.Duration(days) * 24 * time.Hour
		}
	}
	log.Printf("Retention Policy: %d days", int(retention.Hours())/24)

	logPath := os.Getenv("PURGE_LOG_PATH")
	if logPath == "" {
		logPath = defaultLogPath
	}

	// Telemetry is best effort for batch jobs; a missing collector is not fatal
	telemetryProvider, err := telemetry.InitProvider(context.Background(), telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize custom metrics: %v", err)
		metrics = nil
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// RabbitMQ is optional for the batch job; missing broker is not fatal
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, purge event will not be published: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	repo := customer.NewRepository(database)
	purgeService := customer.NewPurgeService(repo, retention)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	now := time.Now()

	// Check how many customers are eligible for deletion
	count, err := purgeService.CountInactiveCustomers(ctx, now)
	if err != nil {
		log.Fatalf("Failed to count inactive customers: %v", err)
	}
	log.Printf("Found %d customers eligible for deletion", count)

	deleted, err := purgeService.PurgeInactiveCustomers(ctx, now)
	if err != nil {
		log.Fatalf("Purge failed: %v", err)
	}

	// A zero-deletion run still gets its log line
	line := runlog.Stamped(now, fmt.Sprintf("Deleted %d inactive customers", deleted))
	if err := runlog.New(logPath).Append(line); err != nil {
		log.Fatalf("Failed to write purge log: %v", err)
	}

	if metrics != nil {
		metrics.RecordCustomersPurged(ctx, deleted)
	}

	if deleted > 0 {
		event := messaging.CustomersPurgedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomersPurged),
			Data: messaging.CustomersPurgedData{
				DeletedCount: deleted,
				CutoffDate:   purgeService.Cutoff(now),
				PurgedAt:     now.UTC(),
			},
		}
		if err := publisher.Publish(ctx, messaging.EventCustomersPurged, event); err != nil {
			log.Printf("Warning: failed to publish customers.purged event: %v", err)
		}
	}

	if telemetryProvider != nil {
		flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
		telemetryProvider.Shutdown(flushCtx)
		cancelFlush()
	}

	log.Printf("✓ Purge completed successfully: %d inactive customers deleted", deleted)
	log.Println("Purge Job - Finished")
}
