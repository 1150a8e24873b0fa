// Package di provides dependency injection for scheduler jobs.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/config"
	"github.com/aristath/jyotish/internal/scheduler"
)

// RegisterJobs schedules cache maintenance. Without a persistent cache there is nothing to schedule.
func RegisterJobs(container *Container, cfg *config.Config, sched *scheduler.Scheduler, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}
	if container.CacheDB == nil {
		log.Debug().Msg("No cache database, skipping maintenance jobs")
		return nil
	}

	if err := sched.RegisterMaintenance(container.CacheCleanup, cfg.CleanupSchedule, container.CacheDB); err != nil {
		return fmt.Errorf("failed to register cache maintenance: %w", err)
	}
	return nil
}
