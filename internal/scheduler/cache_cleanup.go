package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/cache"
)

// CacheCleanupJob sweeps expired provider responses out of the in-memory cache
type CacheCleanupJob struct {
	cache *cache.Cache
	log   zerolog.Logger
}

// NewCacheCleanupJob creates a cache cleanup job
func NewCacheCleanupJob(c *cache.Cache, log zerolog.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache: c,
		log:   log.With().Str("job", "cache_cleanup").Logger(),
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Run evicts expired cache entries
func (j *CacheCleanupJob) Run() error {
	evicted := j.cache.Cleanup()

	if evicted > 0 {
		j.log.Debug().
			Int("evicted", evicted).
			Int("remaining", j.cache.Len()).
			Msg("Evicted expired cache entries")
	}

	return nil
}
