package order

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alinea-commerce/crm-service/internal/runlog"
)

// TestSendOrderReminders_WritesOneLinePerOrder tests the reminder log format
func TestSendOrderReminders_WritesOneLinePerOrder(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mockRepo := &mockRepository{
		listRecentOrdersFunc: func(ctx context.Context, since time.Time) ([]RecentOrder, error) {
			return []RecentOrder{
				{ID: "order-1", CustomerEmail: "alice@example.com", OrderDate: now.Add(-2 * time.Hour)},
				{ID: "order-2", CustomerEmail: "bob@example.com", OrderDate: now.Add(-48 * time.Hour)},
			}, nil
		},
	}

	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	service := NewReminderService(mockRepo, runlog.New(logPath), 0)

	count, err := service.SendOrderReminders(context.Background(), now)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 reminders, got %d", count)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d: %q", len(lines), lines)
	}

	ts := now.Format(time.RFC3339)
	want := fmt.Sprintf("[%s] Order ID: order-1, Email: alice@example.com", ts)
	if lines[0] != want {
		t.Errorf("Expected line %q, got %q", want, lines[0])
	}
	if !strings.Contains(lines[1], "order-2") || !strings.Contains(lines[1], "bob@example.com") {
		t.Errorf("Expected second line for order-2, got %q", lines[1])
	}
}

// TestSendOrderReminders_WindowPassedToStore tests the since computation
func TestSendOrderReminders_WindowPassedToStore(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time
	mockRepo := &mockRepository{
		listRecentOrdersFunc: func(ctx context.Context, since time.Time) ([]RecentOrder, error) {
			gotSince = since
			return nil, nil
		},
	}

	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")

	// Default window is 7 days.
	service := NewReminderService(mockRepo, runlog.New(logPath), 0)
	if _, err := service.SendOrderReminders(context.Background(), now); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := now.Add(-DefaultReminderWindow); !gotSince.Equal(want) {
		t.Errorf("Expected since %s, got %s", want, gotSince)
	}

	// Explicit window overrides the default.
	service = NewReminderService(mockRepo, runlog.New(logPath), 48*time.Hour)
	if _, err := service.SendOrderReminders(context.Background(), now); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := now.Add(-48 * time.Hour); !gotSince.Equal(want) {
		t.Errorf("Expected since %s, got %s", want, gotSince)
	}
}

// TestSendOrderReminders_NoRecentOrders tests a quiet week writes nothing
func TestSendOrderReminders_NoRecentOrders(t *testing.T) {
	mockRepo := &mockRepository{
		listRecentOrdersFunc: func(ctx context.Context, since time.Time) ([]RecentOrder, error) {
			return nil, nil
		},
	}

	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	service := NewReminderService(mockRepo, runlog.New(logPath), 0)

	count, err := service.SendOrderReminders(context.Background(), time.Now())

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 reminders, got %d", count)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("Expected no log file to be created for zero reminders")
	}
}

// TestSendOrderReminders_StoreError tests error propagation
func TestSendOrderReminders_StoreError(t *testing.T) {
	mockRepo := &mockRepository{
		listRecentOrdersFunc: func(ctx context.Context, since time.Time) ([]RecentOrder, error) {
			return nil, errors.New("database connection failed")
		},
	}

	logPath := filepath.Join(t.TempDir(), "order_reminders_log.txt")
	service := NewReminderService(mockRepo, runlog.New(logPath), 0)

	_, err := service.SendOrderReminders(context.Background(), time.Now())

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}
