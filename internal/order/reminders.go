package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alinea-commerce/crm-service/internal/runlog"
)

// DefaultReminderWindow is how far back the reminders job looks for
// orders to remind about (7 days).
const DefaultReminderWindow = 7 * 24 * time.Hour

// ReminderStore is the slice of the repository the reminders job needs.
type ReminderStore interface {
	ListRecentOrders(ctx context.Context, since time.Time) ([]RecentOrder, error)
}

// ReminderService writes one reminder log line per recent order so a
// downstream mailer can pick them up.
type ReminderService struct {
	store  ReminderStore
	runLog *runlog.Writer
	window time.Duration
}

// NewReminderService creates a reminder service. A non-positive window
// falls back to DefaultReminderWindow.
func NewReminderService(store ReminderStore, runLog *runlog.Writer, window time.Duration) *ReminderService {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &ReminderService{store: store, runLog: runLog, window: window}
}

// SendOrderReminders logs a reminder line for every order placed within
// the window ending at now, and returns how many were logged.
func (s *ReminderService) SendOrderReminders(ctx context.Context, now time.Time) (int, error) {
	since := now.Add(-s.window)
	log.Printf("Collecting orders placed since %s", since.Format(time.RFC3339))

	orders, err := s.store.ListRecentOrders(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to list recent orders: %w", err)
	}

	timestamp := now.Format(time.RFC3339)
	for _, o := range orders {
		line := fmt.Sprintf("[%s] Order ID: %s, Email: %s", timestamp, o.ID, o.CustomerEmail)
		if err := s.runLog.Append(line); err != nil {
			return 0, fmt.Errorf("failed to write reminder log: %w", err)
		}
	}

	return len(orders), nil
}
