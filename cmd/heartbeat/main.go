package main

import (
	"log"
	"os"
	"time"

	"github.com/alinea-commerce/crm-service/internal/runlog"
)

const defaultLogPath = "/tmp/crm_heartbeat_log.txt"

func main() {
	logPath := os.Getenv("HEARTBEAT_LOG_PATH")
	if logPath == "" {
		logPath = defaultLogPath
	}

	line := runlog.Stamped(time.Now(), "CRM heartbeat")
	if err := runlog.New(logPath).Append(line); err != nil {
		log.Fatalf("Failed to write heartbeat log: %v", err)
	}
}
