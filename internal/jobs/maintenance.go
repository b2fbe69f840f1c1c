package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// NotificationRetention is how long read notifications are kept.
const NotificationRetention = 30 * 24 * time.Hour

// Maintenance bundles the periodic cleanup work: dropping old read
// notifications and repairing DNA matches left stale by partial failures.
type Maintenance struct {
	NotificationService *services.NotificationService
	MatchService        *services.MatchService
}

// NewMaintenance creates a new instance of Maintenance.
func NewMaintenance(notifService *services.NotificationService, matchService *services.MatchService) *Maintenance {
	return &Maintenance{
		NotificationService: notifService,
		MatchService:        matchService,
	}
}

// RunNightly performs the nightly sweep.
func (m *Maintenance) RunNightly(ctx context.Context) error {
	if err := m.NotificationService.CleanupOldNotifications(ctx, NotificationRetention); err != nil {
		return fmt.Errorf("failed to clean up notifications: %v", err)
	}

	if err := m.MatchService.RefreshAllMatches(ctx); err != nil {
		return fmt.Errorf("failed to refresh matches: %v", err)
	}

	logrus.Info("Nightly maintenance completed")
	return nil
}
