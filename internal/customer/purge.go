package customer

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultRetention is how long a customer may go without ordering before
// the purge removes them (365 days).
const DefaultRetention = 365 * 24 * time.Hour

// PurgeStore is the slice of the repository the purge needs.
type PurgeStore interface {
	CountInactive(ctx context.Context, cutoff time.Time) (int, error)
	DeleteInactive(ctx context.Context, cutoff time.Time) (int, error)
}

// PurgeService deletes inactive customers: those with no orders at all,
// or whose last order is strictly older than the retention window.
type PurgeService struct {
	store     PurgeStore
	retention time.Duration
}

// NewPurgeService creates a purge service. A non-positive retention falls
// back to DefaultRetention.
func NewPurgeService(store PurgeStore, retention time.Duration) *PurgeService {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &PurgeService{store: store, retention: retention}
}

// Cutoff returns the inactivity threshold for the given reference time.
func (s *PurgeService) Cutoff(now time.Time) time.Time {
	return now.Add(-s.retention)
}

// CountInactiveCustomers returns how many customers a purge run at the
// given time would delete, without deleting anything.
func (s *PurgeService) CountInactiveCustomers(ctx context.Context, now time.Time) (int, error) {
	count, err := s.store.CountInactive(ctx, s.Cutoff(now))
	if err != nil {
		return 0, fmt.Errorf("failed to count inactive customers: %w", err)
	}
	return count, nil
}

// PurgeInactiveCustomers deletes all inactive customers in a single bulk
// operation and returns the number of rows removed. Deleting zero rows is
// a successful run.
func (s *PurgeService) PurgeInactiveCustomers(ctx context.Context, now time.Time) (int, error) {
	cutoff := s.Cutoff(now)
	log.Printf("Starting purge of customers inactive since %s", cutoff.Format(time.RFC3339))

	deleted, err := s.store.DeleteInactive(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive customers: %w", err)
	}

	log.Printf("Purged %d inactive customers", deleted)
	return deleted, nil
}
