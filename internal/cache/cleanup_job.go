package cache

import (
	"github.com/rs/zerolog"
)

// CleanupJob removes expired static contexts from the persistent store
type CleanupJob struct {
	store *Store
	log   zerolog.Logger
}

// NewCleanupJob creates a cleanup job for the store
func NewCleanupJob(store *Store, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		store: store,
		log:   log.With().Str("job", "static_cache_cleanup").Logger(),
	}
}

// Run deletes every expired row
func (j *CleanupJob) Run() error {
	deleted, err := j.store.DeleteExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired static contexts")
		return err
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Msg("Cleaned up expired static contexts")
	}
	return nil
}

// Name returns the job name for scheduling and logging
func (j *CleanupJob) Name() string {
	return "static_cache_cleanup"
}
