package cron

import (
	"context"

	"github.com/foundic-app/foundic-backend/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartMaintenanceCronJobs schedules the nightly maintenance sweep.
func StartMaintenanceCronJobs(maintenance *jobs.Maintenance) {
	c := cron.New()

	// Nightly cleanup at midnight
	c.AddFunc("0 0 * * *", func() {
		if err := maintenance.RunNightly(context.Background()); err != nil {
			logrus.WithError(err).Error("Nightly maintenance failed")
		}
	})

	c.Start()
}
